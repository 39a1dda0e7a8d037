package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrianliechti/lens/pkg/client"
)

func main() {
	urlFlag := flag.String("url", "http://localhost:8080", "server url")
	promptFlag := flag.String("prompt", "", "extraction instruction (optional)")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-url url] [-prompt text] image...\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()

	c := client.New(*urlFlag)

	for _, path := range flag.Args() {
		if err := extract(ctx, c, path, *promptFlag); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			os.Exit(1)
		}
	}
}

func extract(ctx context.Context, c *client.Client, path, prompt string) error {
	f, err := os.Open(path)

	if err != nil {
		return err
	}

	defer f.Close()

	doc, err := c.Extractions.New(ctx, client.ExtractionRequest{
		Name:   filepath.Base(path),
		Reader: f,

		Prompt: prompt,
	})

	if err != nil {
		return err
	}

	os.Stdout.WriteString(doc.Text)
	os.Stdout.WriteString("\n")

	return nil
}
