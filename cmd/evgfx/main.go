package main

import (
	"io/ioutil"
	"log"
	"os"

	"github.com/bodgit/evgfx"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version, V",
		Usage: "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func loadProfile(c *cli.Context) (*evgfx.Profile, error) {
	if file := c.String("profile"); file != "" {
		return evgfx.LoadProfile(file)
	}

	p := evgfx.DefaultProfile()
	p.Tile.Width = c.Int("width")
	p.Tile.Height = c.Int("height")
	p.Tile.SubWidth = c.Int("sub-width")
	p.Tile.SubHeight = c.Int("sub-height")
	p.Palette.Transparency = c.String("transparency")
	p.Palette.AlphaThreshold = c.Int("alpha-threshold")
	p.Palette.SkipFirst = c.Bool("skip-first")
	p.Output.Map = c.Bool("map")

	return p, nil
}

func conversionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "profile, p",
			EnvVars: []string{"EVGFX_PROFILE"},
			Usage:   "path to TOML conversion profile",
		},
		&cli.IntFlag{
			Name:  "width",
			Value: 8,
			Usage: "metatile width in pixels",
		},
		&cli.IntFlag{
			Name:  "height",
			Value: 8,
			Usage: "metatile height in pixels",
		},
		&cli.IntFlag{
			Name:  "sub-width",
			Value: 8,
			Usage: "hardware tile width in pixels",
		},
		&cli.IntFlag{
			Name:  "sub-height",
			Value: 8,
			Usage: "hardware tile height in pixels",
		},
		&cli.StringFlag{
			Name:  "transparency",
			Usage: "color reserved for palette index 0, in any CSS notation",
		},
		&cli.IntFlag{
			Name:  "alpha-threshold",
			Value: 128,
			Usage: "alpha below this value is transparent",
		},
		&cli.BoolFlag{
			Name:  "skip-first",
			Usage: "omit palette entry 0 from the palette file",
		},
		&cli.BoolFlag{
			Name:  "map",
			Usage: "also write the tile map",
		},
	}
}

func main() {
	app := cli.NewApp()

	app.Name = "evgfx"
	app.Usage = "Convert images into hardware tile graphics"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "convert",
			Usage:       "Convert a single image",
			Description: "",
			ArgsUsage:   "FILE",
			Flags:       conversionFlags(),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				profile, err := loadProfile(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				conv, err := evgfx.New(profile, nil, newLogger(c))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := conv.Convert(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "scan",
			Usage:       "Convert every image under a directory",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Flags: append(conversionFlags(), &cli.StringFlag{
				Name:    "db",
				EnvVars: []string{"EVGFX_DB"},
				Usage:   "path to cache database",
			}),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				profile, err := loadProfile(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				var db *evgfx.CacheDB
				if file := c.String("db"); file != "" {
					if db, err = evgfx.NewCacheDB(file); err != nil {
						return cli.NewExitError(err, 1)
					}
					defer db.Close()
				}

				conv, err := evgfx.New(profile, db, newLogger(c))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := conv.Scan(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
