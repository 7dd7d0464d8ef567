// Package classify maps files to the closed category set used by the
// index and derives the category year from path hints and metadata.
package classify

import (
	"path/filepath"
	"strings"
)

// Category is one of the closed set of file classifications.
type Category string

const (
	PDF        Category = "PDF Document"
	Word       Category = "Word Document"
	Excel      Category = "Excel Spreadsheet"
	PowerPoint Category = "PowerPoint Presentation"
	Archive    Category = "Archive"
	Text       Category = "Text"
	Code       Category = "Code"
	Image      Category = "Image"
	Audio      Category = "Audio"
	Video      Category = "Video"
	Other      Category = "Other"
)

// extCategories maps lowercase extensions to their category.
// Adding a type means adding entries here, not touching dispatch code.
var extCategories = map[string]Category{
	".txt": Text, ".log": Text, ".md": Text, ".csv": Text, ".rtf": Text,

	".doc": Word, ".docx": Word,
	".xls": Excel, ".xlsx": Excel,
	".ppt": PowerPoint, ".pptx": PowerPoint,
	".pdf": PDF,

	".jpg": Image, ".jpeg": Image, ".png": Image, ".gif": Image,
	".bmp": Image, ".tiff": Image, ".webp": Image,

	".zip": Archive, ".rar": Archive, ".tar": Archive, ".gz": Archive,
	".tgz": Archive, ".7z": Archive,

	".py": Code, ".js": Code, ".java": Code, ".c": Code, ".cpp": Code,
	".h": Code, ".cs": Code, ".go": Code, ".html": Code, ".css": Code, ".sh": Code,

	".mp3": Audio, ".wav": Audio, ".aac": Audio, ".flac": Audio, ".ogg": Audio,

	".mp4": Video, ".avi": Video, ".mkv": Video, ".mov": Video, ".wmv": Video,
}

// ByExtension classifies a file by its extension (with or without leading dot).
func ByExtension(ext string) Category {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if cat, ok := extCategories[ext]; ok {
		return cat
	}
	return Other
}

// ByPath classifies a file by the extension of its path.
func ByPath(path string) Category {
	return ByExtension(filepath.Ext(path))
}

// Categories returns the closed category set in display order.
func Categories() []Category {
	return []Category{
		PDF, Word, Excel, PowerPoint, Archive,
		Text, Code, Image, Audio, Video, Other,
	}
}
