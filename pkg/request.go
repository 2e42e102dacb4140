package pkg

import "fmt"

const (
	ModePreset  = "preset"
	ModePercent = "percent"
	ModeManual  = "manual"
)

type Request struct {
	Source      string      `json:"source"`
	Destination string      `json:"destination"`
	Mode        string      `json:"mode"`
	Platform    string      `json:"platform"`
	Preset      string      `json:"preset"`
	Percent     float64     `json:"percent"`
	Width       int         `json:"width"`
	Height      int         `json:"height"`
	KeepAspect  bool        `json:"keep_aspect"`
	Policy      Policy      `json:"policy"`
	Focal       *FocalPoint `json:"focal,omitempty"`
	Format      Format      `json:"format"`
	Quality     int         `json:"quality"`
	Filter      string      `json:"filter"`
}

func (req *Request) Validate() error {
	if req.Source == "" {
		return fmt.Errorf("source is required field")
	}

	switch req.Mode {
	case ModePreset:
		if req.Platform == "" {
			return fmt.Errorf("platform is required field for preset mode")
		}
		if req.Preset == "" {
			return fmt.Errorf("preset is required field for preset mode")
		}
	case ModePercent:
		if req.Percent <= 0 || req.Percent > 500 {
			return fmt.Errorf("percent must be in (0, 500], got %v", req.Percent)
		}
	case ModeManual:
		if err := validateSide("width", req.Width); err != nil {
			return err
		}
		if !req.KeepAspect {
			if err := validateSide("height", req.Height); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("mode must be one of `%s`, `%s`, `%s`", ModePreset, ModePercent, ModeManual)
	}

	if _, err := ParsePolicy(string(req.Policy)); err != nil {
		return err
	}

	if req.Focal != nil && !req.Focal.Valid() {
		return fmt.Errorf("focal point must be within [0,1], got %v,%v", req.Focal.X, req.Focal.Y)
	}

	if req.Quality < 0 || req.Quality > 100 {
		return fmt.Errorf("quality must be in [1, 100], got %d", req.Quality)
	}

	return nil
}

// Intent builds the sizing intent selected by Mode. Call Validate first.
func (req *Request) Intent() Intent {
	switch req.Mode {
	case ModePreset:
		return Preset{Platform: req.Platform, Name: req.Preset}
	case ModePercent:
		return Percentage{Factor: req.Percent}
	default:
		return Manual{Width: req.Width, Height: req.Height, MaintainAspect: req.KeepAspect}
	}
}

func validateSide(name string, v int) error {
	if v < 1 || v > MaxDimension {
		return fmt.Errorf("%s must be in [1, %d], got %d", name, MaxDimension, v)
	}
	return nil
}

type ConvertRequest struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Format      Format `json:"format"`
	Quality     int    `json:"quality"`
}

func (req *ConvertRequest) Validate() error {
	if req.Source == "" {
		return fmt.Errorf("source is required field")
	}
	if req.Format == "" || req.Format == FormatOriginal {
		return fmt.Errorf("format is required field")
	}
	if req.Quality < 0 || req.Quality > 100 {
		return fmt.Errorf("quality must be in [1, 100], got %d", req.Quality)
	}
	return nil
}
