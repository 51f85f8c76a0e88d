package render

import "io"

// lineWriter keeps the first write error so templates can emit lines without
// checking each one.
type lineWriter struct {
	w   io.Writer
	err error
}

func (lw *lineWriter) line(parts ...string) {
	if lw.err != nil {
		return
	}
	for _, p := range parts {
		if _, lw.err = io.WriteString(lw.w, p); lw.err != nil {
			return
		}
	}
	_, lw.err = io.WriteString(lw.w, "\n")
}
