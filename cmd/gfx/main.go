package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/gfx"
	"github.com/bodgit/gfx/color"
	"github.com/bodgit/gfx/filter"
	"github.com/bodgit/gfx/image"
	"github.com/bodgit/gfx/ppm"
	"github.com/urfave/cli/v2"
)

const defaultDB = "gfx.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func parseChannel(s string) (color.Index, error) {
	switch strings.ToLower(s) {
	case "red":
		return color.Red, nil
	case "green":
		return color.Green, nil
	case "blue":
		return color.Blue, nil
	}
	return 0, fmt.Errorf("invalid channel \"%s\"", s)
}

func textFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:  "text",
		Usage: "write human-readable P3 samples instead of binary P6",
	}
}

// filterAction reads the input file, applies fn, and writes the output
// file, the two files being the first two positional arguments.
func filterAction(c *cli.Context, fn func(*image.TrueColorImage) (*image.TrueColorImage, error)) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	m, err := ppm.ReadFile(c.Args().Get(0))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	m, err = fn(m)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	if err := ppm.WriteFile(c.Args().Get(1), m, !c.Bool("text")); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "gfx"
	app.Usage = "PPM image processing and cataloguing utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"GFX_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to catalogue database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "convert",
			Usage:     "Convert between binary and text PPM variants",
			ArgsUsage: "IN OUT",
			Flags:     []cli.Flag{textFlag()},
			Action: func(c *cli.Context) error {
				return filterAction(c, func(m *image.TrueColorImage) (*image.TrueColorImage, error) {
					return m, nil
				})
			},
		},
		{
			Name:      "grayscale",
			Usage:     "Convert an image to grayscale",
			ArgsUsage: "IN OUT",
			Flags:     []cli.Flag{textFlag()},
			Action: func(c *cli.Context) error {
				return filterAction(c, func(m *image.TrueColorImage) (*image.TrueColorImage, error) {
					return filter.Grayscale(m), nil
				})
			},
		},
		{
			Name:      "edge",
			Usage:     "Sobel edge detection",
			ArgsUsage: "IN OUT",
			Flags:     []cli.Flag{textFlag()},
			Action: func(c *cli.Context) error {
				return filterAction(c, func(m *image.TrueColorImage) (*image.TrueColorImage, error) {
					return filter.EdgeDetect(m), nil
				})
			},
		},
		{
			Name:      "blur",
			Usage:     "Box blur",
			ArgsUsage: "IN OUT",
			Flags: []cli.Flag{
				textFlag(),
				&cli.IntFlag{
					Name:  "radius",
					Value: 1,
					Usage: "blur radius",
				},
			},
			Action: func(c *cli.Context) error {
				radius := c.Int("radius")
				if radius <= 0 {
					return cli.NewExitError(fmt.Errorf("invalid radius %d", radius), 1)
				}
				return filterAction(c, func(m *image.TrueColorImage) (*image.TrueColorImage, error) {
					return filter.BoxBlur(m, radius), nil
				})
			},
		},
		{
			Name:      "crop",
			Usage:     "Crop a rectangle out of an image",
			ArgsUsage: "IN OUT",
			Flags: []cli.Flag{
				textFlag(),
				&cli.IntFlag{Name: "left", Usage: "left edge of rectangle"},
				&cli.IntFlag{Name: "top", Usage: "top edge of rectangle"},
				&cli.IntFlag{Name: "width", Usage: "rectangle width"},
				&cli.IntFlag{Name: "height", Usage: "rectangle height"},
			},
			Action: func(c *cli.Context) error {
				left, top := c.Int("left"), c.Int("top")
				width, height := c.Int("width"), c.Int("height")
				return filterAction(c, func(m *image.TrueColorImage) (*image.TrueColorImage, error) {
					if width <= 0 || height <= 0 ||
						!m.IsX(left) || !m.IsY(top) ||
						!m.IsX(left+width-1) || !m.IsY(top+height-1) {
						return nil, fmt.Errorf("rectangle %dx%d+%d+%d outside image %dx%d",
							width, height, left, top, m.Width(), m.Height())
					}
					return filter.Crop(m, left, top, width, height), nil
				})
			},
		},
		{
			Name:      "clear",
			Usage:     "Clear one color channel",
			ArgsUsage: "IN OUT",
			Flags: []cli.Flag{
				textFlag(),
				&cli.StringFlag{
					Name:  "channel",
					Value: "red",
					Usage: "channel to clear (red, green, or blue)",
				},
			},
			Action: func(c *cli.Context) error {
				channel, err := parseChannel(c.String("channel"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				return filterAction(c, func(m *image.TrueColorImage) (*image.TrueColorImage, error) {
					return filter.ClearComponent(m, channel), nil
				})
			},
		},
		{
			Name:      "scale",
			Usage:     "Scale one color channel",
			ArgsUsage: "IN OUT",
			Flags: []cli.Flag{
				textFlag(),
				&cli.StringFlag{
					Name:  "channel",
					Value: "red",
					Usage: "channel to scale (red, green, or blue)",
				},
				&cli.Float64Flag{
					Name:  "factor",
					Value: 1.0,
					Usage: "scale factor",
				},
			},
			Action: func(c *cli.Context) error {
				channel, err := parseChannel(c.String("channel"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				factor := c.Float64("factor")
				if factor < 0 {
					return cli.NewExitError(fmt.Errorf("invalid factor %f", factor), 1)
				}
				return filterAction(c, func(m *image.TrueColorImage) (*image.TrueColorImage, error) {
					return filter.ScaleComponent(m, channel, factor), nil
				})
			},
		},
		{
			Name:        "scan",
			Usage:       "Scan filesystem and catalogue PPM images",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				logger := log.New(ioutil.Discard, "", 0)
				if c.Bool("verbose") {
					logger.SetOutput(os.Stderr)
				}

				db, err := gfx.NewImageDB(c.String("db"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				l := gfx.New(db, logger)

				if err := l.Scan(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				if n, err := db.Count(); err == nil {
					logger.Printf("%d images catalogued\n", n)
				}

				return nil
			},
		},
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
