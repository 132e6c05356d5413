package gateway

import (
	"io"
	"math"
)

// progressReader reports how much of the wrapped body has been handed to
// the transport, as a rounded percentage. Emitted percentages are strictly
// increasing per reader; a terminal 100 is not guaranteed here because the
// transport may finish the request before the last Read is observed —
// callers treat completion as 100%.
type progressReader struct {
	r          io.Reader
	total      int64
	read       int64
	lastEmit   int
	onProgress ProgressFunc
}

func newProgressReader(r io.Reader, total int64, onProgress ProgressFunc) *progressReader {
	return &progressReader{r: r, total: total, lastEmit: -1, onProgress: onProgress}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		p.emit()
	}
	return n, err
}

func (p *progressReader) emit() {
	if p.onProgress == nil || p.total <= 0 {
		return
	}
	pct := int(math.Round(float64(p.read) / float64(p.total) * 100))
	if pct > 100 {
		pct = 100
	}
	if pct > p.lastEmit {
		p.lastEmit = pct
		p.onProgress(pct)
	}
}
