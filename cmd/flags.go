package cmd

import (
	"fmt"
	"os"

	mtreps "github.com/gnames/mtreps/pkg"
	"github.com/gnames/mtreps/pkg/config"
	"github.com/spf13/cobra"
)

func versionFlag(cmd *cobra.Command) {
	hasVersionFlag, _ := cmd.Flags().GetBool("version")
	if hasVersionFlag {
		fmt.Printf("\nversion: %s\nbuild: %s\n\n", mtreps.Version, mtreps.Build)
		os.Exit(0)
	}
}

// mergeOptions converts changed flags of the merge command to options.
// Flags that were not set leave configuration untouched.
func mergeOptions(cmd *cobra.Command) []config.Option {
	var res []config.Option
	fl := cmd.Flags()

	if fl.Changed("root-dir") {
		s, _ := fl.GetString("root-dir")
		res = append(res, config.OptRootDir(s))
	}
	if fl.Changed("output-dir") {
		s, _ := fl.GetString("output-dir")
		res = append(res, config.OptOutputDir(s))
	}
	if fl.Changed("archive") {
		s, _ := fl.GetString("archive")
		res = append(res, config.OptArchive(s))
	}
	if fl.Changed("publish-dir") {
		s, _ := fl.GetString("publish-dir")
		res = append(res, config.OptPublishDir(s))
	}
	if fl.Changed("fail-on-collision") {
		b, _ := fl.GetBool("fail-on-collision")
		res = append(res, config.OptFailOnCollision(&b))
	}
	if fl.Changed("quiet") {
		b, _ := fl.GetBool("quiet")
		withProgress := !b
		res = append(res, config.OptWithProgress(&withProgress))
	}
	if fl.Changed("jobs") {
		i, _ := fl.GetInt("jobs")
		res = append(res, config.OptJobsNumber(i))
	}
	return res
}
