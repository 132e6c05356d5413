package dto

type ChatRequest struct {
	Query string `json:"query" validate:"required,min=1,max=2000"`
}

type ChatSourceResponse struct {
	DocumentId     string  `json:"document_id"`
	Filename       string  `json:"filename"`
	ChunkText      string  `json:"chunk_text"`
	RelevanceScore float64 `json:"relevance_score"`
}

type ChatResponse struct {
	Answer        string               `json:"answer"`
	Sources       []ChatSourceResponse `json:"sources"`
	NotebookId    string               `json:"notebook_id"`
	RetrievalMode string               `json:"retrieval_mode"`
}
