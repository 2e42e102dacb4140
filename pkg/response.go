package pkg

type Result struct {
	FileName string `json:"file_name"`
	Path     string `json:"path"`
	Format   Format `json:"format"`
	MIME     string `json:"mime"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Percent  int    `json:"percent"`
	Policy   Policy `json:"policy,omitempty"`
	Bytes    int    `json:"bytes"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
