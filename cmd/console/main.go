package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/chzyer/readline"

	"kgeyst.com/symptomchecker/pkg/common"
	"kgeyst.com/symptomchecker/pkg/symptomchecker/api"
	"kgeyst.com/symptomchecker/pkg/symptomchecker/infrastructure/console"
	"kgeyst.com/symptomchecker/pkg/symptomchecker/infrastructure/web"
)

func main() {
	err := mainImpl()
	if err != nil {
		panic(err)
	}
}

func mainImpl() error {
	config, err := common.LoadConfigOrEmpty("config.yaml")
	if err != nil {
		return err
	}
	ctx := context.Background()
	rl, err := readline.New("> ")
	if err != nil {
		return err
	}
	defer func() {
		_ = rl.Close()
	}()
	prompter := console.NewPrompter(rl)
	checker, err := api.NewAPI(ctx, config, prompter)
	if err != nil {
		return err
	}
	fmt.Println("Example run: Provide a public image URL of a visible skin condition (a question may follow the URL).")
	line, err := prompter.Ask("Enter image URL (or press Enter to skip example): ")
	if err != nil && !errors.Is(err, console.ErrAborted) {
		return err
	}
	imageURL, query := web.NewURLFinder().SplitURL(line)
	if imageURL == "" && query != "" {
		imageURL, query = query, "" // no scheme, so let the fetch decide whether it's a URL
	}
	if imageURL == "" {
		fmt.Println("No example image provided. Setup complete.")
		return nil
	}
	// Errors during the run are reported, not re-raised: it's a demonstration, not a service.
	fmt.Println("\nRunning inference...")
	assessment, err := checker.Assess(ctx, imageURL, query)
	if err != nil {
		fmt.Println("Error during example run:", err)
		return nil
	}
	fmt.Print(api.FormatAssessment(assessment, api.NewReportOptions(config)))
	return nil
}
