package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"

	"ytmp3/cmd"
	"ytmp3/config"
	"ytmp3/services"
)

func main() {
	var (
		url    string
		out    string
		server bool
		port   int
	)

	flag.StringVar(&url, "url", "", "Media URL to convert to MP3")
	flag.StringVar(&out, "out", ".", "Output directory for CLI conversions")
	flag.BoolVar(&server, "server", false, "Start in web server mode")
	flag.IntVar(&port, "port", 8080, "Port for web server mode")
	flag.Parse()

	// Server mode takes precedence
	if server {
		cmd.StartWebServer(port)
		return
	}

	if url == "" {
		flag.Usage()
		return
	}

	if err := convertOnce(url, out); err != nil {
		log.Fatalf("Error: %s", err)
	}
}

// convertOnce runs the conversion pipeline for a single URL with a terminal
// progress bar instead of the websocket hub.
func convertOnce(url, out string) error {
	if err := config.EnsureScratchDir(); err != nil {
		return err
	}

	bar := progressbar.NewOptions(100,
		progressbar.OptionSetDescription("downloading"),
		progressbar.OptionSetPredictTime(false),
	)

	resolver := services.NewYouTubeResolver()
	transcoder := services.NewFFmpegTranscoder(config.GetFFmpegPath())
	converter := services.NewConverter(resolver, transcoder, barPublisher{bar: bar}, config.GetScratchDir())

	result, err := converter.Convert(context.Background(), url, "cli")
	if err != nil {
		return err
	}

	outputPath := filepath.Join(out, result.FileName)
	if err := os.WriteFile(outputPath, result.Data, 0644); err != nil {
		return err
	}

	meta := services.NewFileService().ExtractAudioMetadata(outputPath)
	if meta.Artist != "" {
		log.Printf("Saved %s - %s to %s", meta.Artist, meta.Title, outputPath)
	} else {
		log.Printf("Saved %s", outputPath)
	}
	return nil
}

// barPublisher adapts the terminal progress bar to the pipeline's publisher.
type barPublisher struct {
	bar *progressbar.ProgressBar
}

func (b barPublisher) Publish(_ string, percent int) {
	_ = b.bar.Set(percent)
}
