package main

import (
	"github.com/spf13/cobra"

	"github.com/nocturnecity/image-reframer/internal"
	"github.com/nocturnecity/image-reframer/pkg"
)

func (a *app) convertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <source>",
		Short: "Convert an image to another format without resizing",
		Long: `Convert one image to jpeg, png, webp, bmp or tiff. The output is named
<source name>_converted.<ext>. Transparency is flattened onto white for jpeg and bmp.

Example:
  reframer convert logo.png --format jpeg --quality 85 --dest out/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := pkg.ParseFormat(mustGetString(cmd, "format"))
			if err != nil {
				return err
			}
			req := pkg.ConvertRequest{
				Source:      args[0],
				Destination: mustGetString(cmd, "dest"),
				Format:      format,
				Quality:     mustGetInt(cmd, "quality"),
			}
			if err := req.Validate(); err != nil {
				return err
			}
			env, err := a.env(req.Source, req.Destination)
			if err != nil {
				return err
			}
			return a.run(cmd.Context(), internal.NewConvertHandler(req, env))
		},
	}
	cmd.Flags().String("format", string(pkg.FormatPNG), "output format: jpeg, png, webp, bmp, tiff")
	cmd.Flags().Int("quality", internal.DefaultConvertQuality, "encoder quality 1-100 for formats that support it")
	cmd.Flags().String("dest", "", "output file, directory (trailing /) or s3:// prefix; defaults to the current directory")
	return cmd
}
