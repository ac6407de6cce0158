package config

const (
	// MaxFolderNameLength is the maximum length for folder names.
	// Limited to 255 to fit comfortably in indexed text columns and
	// provide reasonable UX (names should be short and descriptive).
	MaxFolderNameLength = 255

	// MaxFileNameLength is the maximum length for file names.
	// Same as folder names for consistency.
	MaxFileNameLength = 255

	// MaxUploadSize is the maximum accepted upload body, in bytes.
	MaxUploadSize = 100 << 20 // 100 MB

	// MaxTags is the maximum number of tags on a single file.
	MaxTags = 32
)
