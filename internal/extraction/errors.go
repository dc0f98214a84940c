package extraction

import "fmt"

// UnsupportedFormatError is returned when the input file extension is not
// one of the supported resume formats.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported resume format %q (supported: .pdf, .docx, .txt)", e.Format)
}

// ExtractionError wraps a failure while reading or decoding a resume document.
type ExtractionError struct {
	Source string
	Cause  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from %s: %v", e.Source, e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
