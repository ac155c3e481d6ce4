package url

// ContentTypes maps lower-cased file extensions to content types. It takes
// precedence over the system MIME database so results do not vary between
// machines.
var ContentTypes = map[string]string{
	// Pages
	".html":  "text/html",
	".htm":   "text/html",
	".shtml": "text/html",
	".xhtml": "application/xhtml+xml",
	".php":   "text/html",
	".asp":   "text/html",
	".aspx":  "text/html",
	".jsp":   "text/html",

	// Styles and scripts
	".css":  "text/css",
	".js":   "application/javascript",
	".mjs":  "application/javascript",
	".cjs":  "application/javascript",
	".wasm": "application/wasm",

	// Data
	".json": "application/json",
	".xml":  "application/xml",
	".rss":  "application/rss+xml",
	".atom": "application/atom+xml",
	".txt":  "text/plain",
	".csv":  "text/csv",
	".md":   "text/markdown",
	".pdf":  "application/pdf",
	".zip":  "application/zip",
	".gz":   "application/gzip",

	// Images
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".webp": "image/webp",
	".avif": "image/avif",
	".bmp":  "image/bmp",
	".ico":  "image/vnd.microsoft.icon",
	".tif":  "image/tiff",
	".tiff": "image/tiff",

	// Audio
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".ogg":  "audio/ogg",
	".oga":  "audio/ogg",
	".opus": "audio/opus",
	".flac": "audio/flac",
	".aac":  "audio/aac",
	".m4a":  "audio/mp4",
	".weba": "audio/webm",

	// Video
	".mp4":  "video/mp4",
	".m4v":  "video/mp4",
	".webm": "video/webm",
	".ogv":  "video/ogg",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".mkv":  "video/x-matroska",
	".mpeg": "video/mpeg",

	// Fonts
	".woff":  "font/woff",
	".woff2": "font/woff2",
	".ttf":   "font/ttf",
	".otf":   "font/otf",
}
