package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/otsproject/ots/internal/core/domain"
)

var (
	languageSeedType string

	languageListCmd = &cobra.Command{
		Use:   "list",
		Short: "list seed languages",
		Long: "this command lists the catalog of seed languages, optionally " +
			"restricted to those supporting a seed scheme",
		RunE: languageList,
	}
	languageCmd = &cobra.Command{
		Use:   "language",
		Short: "inspect the seed language catalog",
		Long:  "this command lets you inspect the known seed phrase languages",
	}
)

type languageInfo struct {
	Code        string
	Name        string
	EnglishName string
	Default     bool
}

func init() {
	languageListCmd.Flags().StringVar(
		&languageSeedType, "type", "", "restrict to a seed scheme, monero or polyseed",
	)

	languageCmd.AddCommand(languageListCmd)
}

func languageList(cmd *cobra.Command, _ []string) error {
	languages := domain.Languages()
	seedType := domain.SeedTypeMonero
	if len(languageSeedType) > 0 {
		switch languageSeedType {
		case domain.SeedTypeMonero.String():
		case domain.SeedTypePolyseed.String():
			seedType = domain.SeedTypePolyseed
		default:
			return fmt.Errorf("unknown seed type %q", languageSeedType)
		}
		languages = domain.LanguagesFor(seedType)
	}

	infos := make([]languageInfo, 0, len(languages))
	for _, language := range languages {
		infos = append(infos, languageInfo{
			Code:        language.Code(),
			Name:        language.Name(),
			EnglishName: language.EnglishName(),
			Default:     language.IsDefault(seedType),
		})
	}

	printRespJSON(infos)
	return nil
}
