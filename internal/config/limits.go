package config

const (
	// MaxUploadBytes is the default cap on request body size (50 MiB).
	// Large office documents and zip archives fit comfortably; anything
	// bigger is rejected with 413 before staging.
	MaxUploadBytes = 50 << 20

	// MaxJSONBodyBytes is the cap on JSON request bodies (1 MiB).
	// The only JSON endpoint carries a single URL string, so this is
	// generous already.
	MaxJSONBodyBytes = 1 << 20

	// MultipartMemoryBytes is how much of a multipart upload is held in
	// memory before spilling to disk (32 MiB, the net/http default).
	MultipartMemoryBytes = 32 << 20
)
