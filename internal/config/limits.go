package config

const (
	// MaxTitleLength is the maximum length for document titles.
	// Limited to 255 to keep titles indexable and provide reasonable
	// UX (titles should be short and descriptive).
	MaxTitleLength = 255

	// MaxFolderNameLength is the maximum length for folder names.
	// Same as document titles for consistency.
	MaxFolderNameLength = 255
)
