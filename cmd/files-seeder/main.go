// Command files-seeder populates a files-manager instance with sample
// documents, the way the project's original seeding script does:
//
//	files-seeder [-base-url URL] [-count N] [-parent ID] TOKEN
//
// Each created file's response body is printed to stdout, one JSON line
// per file. The run halts on the first failure; nothing is retried.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/OluchukwuJoseph/alx-files-manager/pkg/filemanager"
	"github.com/OluchukwuJoseph/alx-files-manager/pkg/seeder"
)

const envFilesURL = "FILES_API_URL"

func main() {
	baseURL := flag.String("base-url", "", "files-manager base URL (default $FILES_API_URL or "+seeder.DefaultBaseURL+")")
	count := flag.Int("count", seeder.DefaultCount, "number of files to create")
	parent := flag.Int64("parent", 0, "parent container ID (0 = root)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	token := flag.Arg(0)

	if err := godotenv.Load(); err != nil {
		log.Println(".env not found, using environment variables")
	}

	url := strings.TrimSpace(*baseURL)
	if url == "" {
		url = strings.TrimSpace(os.Getenv(envFilesURL))
	}
	if url == "" {
		url = seeder.DefaultBaseURL
	}

	client, err := filemanager.New(url, token)
	if err != nil {
		log.Fatalf("init client: %v", err)
	}
	if err := seeder.New(client, os.Stdout).Run(context.Background(), *count, *parent); err != nil {
		log.Fatalf("seed %s: %v", url, err)
	}
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: files-seeder [flags] TOKEN\n\n")
	flag.PrintDefaults()
}
