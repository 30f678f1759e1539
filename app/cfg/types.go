package cfg

type Cfg struct {
	// HTTP server
	Port string

	// Ingestion
	FeedsFile       string
	RefreshInterval int // seconds
	FetchTimeout    int // seconds
	ExtractContent  bool

	// Tech radar storage
	DBPath string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
