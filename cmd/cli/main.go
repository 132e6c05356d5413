package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"notebooklm-client/internal/config"
	"notebooklm-client/internal/dto"
	"notebooklm-client/internal/entity"
	"notebooklm-client/internal/gateway"
	"notebooklm-client/internal/pkg/logger"
	"notebooklm-client/internal/store"
)

func main() {
	cfg := config.Load()

	// File-only logging keeps the prompt clean.
	zapLogger := logger.NewFileOnlyLogger(cfg.App.LogFilePath)
	defer zapLogger.Sync()

	gw := gateway.NewHttpGateway(cfg.API, zapLogger)
	notebooks := store.NewNotebookStore(gw, nil, zapLogger)
	session := store.NewChatSession(gw, nil, zapLogger)
	notebooks.SetSelectionListener(session.SetNotebook)

	ctx := context.Background()

	color.Cyan("NotebookLM client — connected to %s", cfg.API.BaseURL)
	if err := gw.Health(ctx); err != nil {
		color.Red("Warning: backend unreachable: %v", err)
	}
	if err := notebooks.LoadNotebooks(ctx); err == nil {
		printNotebooks(notebooks)
	}
	color.White("Type 'help' for commands.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(prompt(notebooks))
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cmd, arg := splitCommand(line)

		switch cmd {
		case "quit", "exit":
			return
		case "help":
			printHelp()
		case "notebooks", "ls":
			if err := notebooks.LoadNotebooks(ctx); err != nil {
				printStoreError(notebooks)
				continue
			}
			printNotebooks(notebooks)
		case "create":
			if _, err := notebooks.CreateNotebook(ctx, arg); err != nil {
				printStoreError(notebooks)
				continue
			}
			printNotebooks(notebooks)
		case "rename":
			num, name := splitCommand(arg)
			nb := notebookByNumber(notebooks, num)
			if nb == nil {
				continue
			}
			if err := notebooks.RenameNotebook(ctx, nb.Id, name); err != nil {
				printStoreError(notebooks)
				continue
			}
			printNotebooks(notebooks)
		case "delete":
			nb := notebookByNumber(notebooks, arg)
			if nb == nil {
				continue
			}
			if err := notebooks.DeleteNotebook(ctx, nb.Id); err != nil {
				printStoreError(notebooks)
				continue
			}
			color.Green("Deleted %q", nb.Name)
		case "open":
			nb := notebookByNumber(notebooks, arg)
			if nb == nil {
				continue
			}
			if err := notebooks.SelectNotebook(ctx, nb); err != nil {
				printStoreError(notebooks)
				continue
			}
			color.Green("Opened %q", nb.Name)
			printDocuments(notebooks)
		case "close":
			_ = notebooks.SelectNotebook(ctx, nil)
		case "docs":
			printDocuments(notebooks)
		case "upload":
			uploadFile(ctx, notebooks, arg)
		case "rmdoc":
			doc := documentByNumber(notebooks, arg)
			if doc == nil {
				continue
			}
			if err := notebooks.DeleteDocument(ctx, doc.Id); err != nil {
				printStoreError(notebooks)
				continue
			}
			color.Green("Deleted %q", doc.Filename)
		case "ask":
			if err := session.SendQuery(ctx, arg); err != nil {
				color.Red("%v", err)
				continue
			}
			printTranscriptTail(session)
		case "chat":
			printTranscript(session)
		case "dismiss":
			notebooks.DismissError()
		default:
			color.Red("Unknown command %q (try 'help')", cmd)
		}
	}
}

func prompt(notebooks store.INotebookStore) string {
	if nb := notebooks.Current(); nb != nil {
		return nb.Name + "> "
	}
	return "> "
}

func splitCommand(line string) (string, string) {
	parts := strings.SplitN(line, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.TrimSpace(parts[1])
}

func printHelp() {
	color.White("Commands:")
	fmt.Println("  notebooks            refresh and list notebooks")
	fmt.Println("  create <name>        create a notebook")
	fmt.Println("  rename <n> <name>    rename notebook <n>")
	fmt.Println("  delete <n>           delete notebook <n>")
	fmt.Println("  open <n>             open notebook <n>")
	fmt.Println("  close                deselect the current notebook")
	fmt.Println("  docs                 list the open notebook's documents")
	fmt.Println("  upload <path>        upload a .pdf/.txt/.docx file")
	fmt.Println("  rmdoc <n>            delete document <n>")
	fmt.Println("  ask <question>       query the open notebook")
	fmt.Println("  chat                 show the transcript")
	fmt.Println("  dismiss              dismiss the current error")
	fmt.Println("  quit                 exit")
}

func printNotebooks(notebooks store.INotebookStore) {
	list := notebooks.Notebooks()
	if len(list) == 0 {
		color.White("No notebooks yet. Use 'create <name>'.")
		return
	}
	for i, nb := range list {
		fmt.Printf("  %d. %s (%d documents)\n", i+1, nb.Name, nb.DocumentCount)
	}
}

func printDocuments(notebooks store.INotebookStore) {
	docs := notebooks.Documents()
	if len(docs) == 0 {
		color.White("No documents in this notebook.")
		return
	}
	for i, doc := range docs {
		fmt.Printf("  %d. %s (%d chunks)\n", i+1, doc.Filename, doc.ChunkCount)
	}
}

func notebookByNumber(notebooks store.INotebookStore, arg string) *entity.Notebook {
	list := notebooks.Notebooks()
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 || n > len(list) {
		color.Red("Pick a notebook number between 1 and %d", len(list))
		return nil
	}
	return list[n-1]
}

func documentByNumber(notebooks store.INotebookStore, arg string) *entity.Document {
	docs := notebooks.Documents()
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 || n > len(docs) {
		color.Red("Pick a document number between 1 and %d", len(docs))
		return nil
	}
	return docs[n-1]
}

func uploadFile(ctx context.Context, notebooks store.INotebookStore, path string) {
	if path == "" {
		color.Red("Usage: upload <path>")
		return
	}
	f, err := os.Open(path)
	if err != nil {
		color.Red("Cannot open %s: %v", path, err)
		return
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		color.Red("Cannot stat %s: %v", path, err)
		return
	}

	doc, err := notebooks.UploadDocument(ctx, dto.FileUpload{
		Filename: filepath.Base(path),
		Size:     info.Size(),
		Content:  f,
	}, func(pct int) {
		fmt.Printf("\r  uploading... %3d%%", pct)
	})
	fmt.Println()
	if err != nil {
		color.Red("%v", err)
		return
	}
	if doc != nil {
		color.Green("Uploaded %q (%d chunks)", doc.Filename, doc.ChunkCount)
	}
}

func printTranscript(session store.IChatSession) {
	msgs := session.Messages()
	if len(msgs) == 0 {
		color.White("Transcript is empty.")
		return
	}
	for _, m := range msgs {
		printMessage(m)
	}
}

// printTranscriptTail shows the latest exchange: the user's question and
// whatever it produced.
func printTranscriptTail(session store.IChatSession) {
	msgs := session.Messages()
	start := len(msgs) - 2
	if start < 0 {
		start = 0
	}
	for _, m := range msgs[start:] {
		printMessage(m)
	}
}

func printMessage(m entity.Message) {
	switch msg := m.(type) {
	case entity.UserMessage:
		color.Cyan("you: %s", msg.Content)
	case entity.AssistantMessage:
		color.Green("assistant: %s", msg.Content)
		for _, src := range msg.Sources {
			fmt.Printf("    [%.2f] %s: %s\n", src.RelevanceScore, src.Filename, src.ChunkText)
		}
	case entity.ErrorMessage:
		color.Red("error: %s", msg.Content)
	}
}

func printStoreError(notebooks store.INotebookStore) {
	if msg := notebooks.CurrentError(); msg != "" {
		color.Red("%s", msg)
		notebooks.DismissError()
		return
	}
	color.Red("Something went wrong")
}
