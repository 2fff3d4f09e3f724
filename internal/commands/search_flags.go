package commands

import (
	"github.com/urfave/cli/v3"

	"github.com/colonyops/refract/internal/core/config"
	"github.com/colonyops/refract/internal/core/git"
	"github.com/colonyops/refract/internal/core/logging"
	"github.com/colonyops/refract/internal/core/search"
	"github.com/colonyops/refract/pkg/executil"
)

// searchFlags are the match collection flags shared by edit and search.
type searchFlags struct {
	include    []string
	exclude    []string
	ignoreCase bool
	hidden     bool
	noGit      bool
}

func (sf *searchFlags) flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "include",
			Usage:       "only search files matching glob (repeatable)",
			Destination: &sf.include,
		},
		&cli.StringSliceFlag{
			Name:        "exclude",
			Usage:       "skip files matching glob (repeatable)",
			Destination: &sf.exclude,
		},
		&cli.BoolFlag{
			Name:        "ignore-case",
			Aliases:     []string{"i"},
			Usage:       "match case-insensitively",
			Destination: &sf.ignoreCase,
		},
		&cli.BoolFlag{
			Name:        "hidden",
			Usage:       "search hidden files and directories",
			Destination: &sf.hidden,
		},
		&cli.BoolFlag{
			Name:        "no-git",
			Usage:       "walk directories instead of listing git tracked files",
			Destination: &sf.noGit,
		},
	}
}

// options combines the configured search defaults with the flags.
func (sf *searchFlags) options(cfg *config.Config, pattern string, paths []string) search.Options {
	return search.Options{
		Pattern:     pattern,
		Paths:       paths,
		Include:     append(append([]string{}, cfg.Search.Include...), sf.include...),
		Exclude:     append(append([]string{}, cfg.Search.Exclude...), sf.exclude...),
		IgnoreCase:  sf.ignoreCase,
		Hidden:      cfg.Search.Hidden || sf.hidden,
		UseGit:      cfg.Search.UseGit && !sf.noGit,
		MaxFileSize: cfg.Search.MaxFileSize,
	}
}

func newSearcher(cfg *config.Config) *search.Searcher {
	var (
		exec    = &executil.RealExecutor{}
		gitExec = git.NewExecutor(cfg.GitPath, exec)
	)
	return search.New(gitExec, logging.Component("search"))
}
