package excel

// ReaderConfig holds configuration for the tabular data source
type ReaderConfig struct {
	FilePath string `json:"file_path"`
	// Sheet is only consulted for workbooks; empty means Sheet1 or the first sheet
	Sheet string `json:"sheet,omitempty"`
}

// DefaultReaderConfig returns sensible defaults for a file path
func DefaultReaderConfig(filePath string) ReaderConfig {
	return ReaderConfig{FilePath: filePath}
}
