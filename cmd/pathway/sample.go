package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/mrsinham/pathway/internal/config"
	"github.com/mrsinham/pathway/internal/dicom"
	"github.com/spf13/cobra"
)

func newSampleCmd(d deps, root *rootFlags) *cobra.Command {
	var (
		dir    string
		images int
		size   int
		seed   uint64
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write a demonstration patient study to analyze",
		Long: `Writes a small MR study for one generated patient: DICOM slices stamped
"File X/Y", a JPEG preview and a placeholder patient-records PDF.

  pathway sample --dir demo --images 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dir == "" {
				cfg, err := config.Load(d.fs, root.configPath)
				if err != nil {
					return err
				}
				dir = cfg.SampleDir
			}

			sample, err := dicom.WriteSample(d.fs, dicom.SampleOptions{
				Dir:    dir,
				Images: images,
				Size:   size,
				Seed:   seed,
			})
			if err != nil {
				return fmt.Errorf("writing sample: %w", err)
			}

			var total int64
			for _, f := range sample.Files {
				if info, err := d.fs.Stat(f); err == nil {
					total += info.Size()
				}
			}

			fmt.Fprintf(d.out, "✓ Sample written to %s\n", dir)
			fmt.Fprintf(d.out, "  Patient: %s (%s)\n", sample.Patient.Name, sample.Patient.ID)
			fmt.Fprintf(d.out, "  Files:   %d (%s)\n", len(sample.Files), humanize.Bytes(uint64(total)))
			fmt.Fprintf(d.out, "\nAnalyze it with: pathway %s\n", dir)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "output directory (default from config sample_dir)")
	cmd.Flags().IntVar(&images, "images", 3, "number of DICOM slices")
	cmd.Flags().IntVar(&size, "size", 128, "image edge in pixels")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for reproducible output (random if 0)")
	return cmd
}
