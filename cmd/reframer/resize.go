package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nocturnecity/image-reframer/internal"
	"github.com/nocturnecity/image-reframer/pkg"
)

func (a *app) resizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resize <source>",
		Short: "Resize an image to a preset, a percentage or explicit dimensions",
		Long: `Resize one image. Pick exactly one sizing mode:

  --platform P --preset N     social media preset (see 'reframer presets')
  --percent F                 scale both sides, 100 keeps the original size
  --width W [--height H]      explicit size, --keep-aspect derives the height

When the target aspect ratio differs from the source by more than 0.01, --policy
must be stretch, crop or pad. Crop keeps the centre unless --focal x,y is given.

Example:
  reframer resize photo.jpg --platform instagram --preset stories --policy crop
  reframer resize photo.png --percent 50 --format webp --dest out/
  reframer resize s3://bucket/in.jpg --width 800 --keep-aspect --dest s3://bucket/out/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := resizeRequestFromFlags(cmd, args[0])
			if err != nil {
				return err
			}
			env, err := a.env(req.Source, req.Destination)
			if err != nil {
				return err
			}
			return a.run(cmd.Context(), internal.NewResizeHandler(req, env))
		},
	}
	f := cmd.Flags()
	f.String("dest", "", "output file, directory (trailing /) or s3:// prefix; defaults to the current directory")
	f.String("platform", "", "preset platform, e.g. Instagram")
	f.String("preset", "", "preset content type, e.g. Stories")
	f.Float64("percent", 0, "scale percentage (0, 500]")
	f.Int("width", 0, "target width in pixels")
	f.Int("height", 0, "target height in pixels")
	f.Bool("keep-aspect", false, "derive the height from --width and the source aspect ratio")
	f.String("policy", string(pkg.PolicyAuto), "reframe policy: auto, stretch, crop, pad")
	f.String("focal", "", "crop focal point as normalized x,y, e.g. 0.5,0.3")
	f.String("format", string(pkg.FormatOriginal), "output format: original, jpeg, png, webp, bmp, tiff")
	f.Int("quality", a.cfg.Quality, "encoder quality 1-100 for formats that support it (default 95)")
	f.String("filter", a.cfg.Filter, fmt.Sprintf("resampling filter: %v", internal.FilterNames()))
	return cmd
}

func resizeRequestFromFlags(cmd *cobra.Command, source string) (pkg.Request, error) {
	req := pkg.Request{
		Source:      source,
		Destination: mustGetString(cmd, "dest"),
		Platform:    mustGetString(cmd, "platform"),
		Preset:      mustGetString(cmd, "preset"),
		Percent:     mustGetFloat64(cmd, "percent"),
		Width:       mustGetInt(cmd, "width"),
		Height:      mustGetInt(cmd, "height"),
		KeepAspect:  mustGetBool(cmd, "keep-aspect"),
		Quality:     mustGetInt(cmd, "quality"),
		Filter:      mustGetString(cmd, "filter"),
	}

	var modes []string
	if req.Platform != "" || req.Preset != "" {
		modes = append(modes, pkg.ModePreset)
	}
	if cmd.Flags().Changed("percent") {
		modes = append(modes, pkg.ModePercent)
	}
	if cmd.Flags().Changed("width") || cmd.Flags().Changed("height") {
		modes = append(modes, pkg.ModeManual)
	}
	switch len(modes) {
	case 0:
		return req, fmt.Errorf("one sizing mode required: --platform/--preset, --percent or --width/--height")
	case 1:
		req.Mode = modes[0]
	default:
		return req, fmt.Errorf("sizing modes %v are mutually exclusive", modes)
	}

	var err error
	if req.Policy, err = pkg.ParsePolicy(mustGetString(cmd, "policy")); err != nil {
		return req, err
	}
	if req.Focal, err = pkg.ParseFocalPoint(mustGetString(cmd, "focal")); err != nil {
		return req, err
	}
	if req.Format, err = pkg.ParseFormat(mustGetString(cmd, "format")); err != nil {
		return req, err
	}
	return req, req.Validate()
}
