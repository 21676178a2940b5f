// command render writes the synth's output to a wav file.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/pfcm/crazysynth"
	"github.com/pfcm/crazysynth/audio"
	"github.com/pfcm/crazysynth/internal/cli"
	"github.com/pfcm/crazysynth/param"
)

var (
	outFlag      = flag.String("o", "", "file to write, defaults to out-<unix time>.wav")
	durFlag      = flag.Duration("dur", 5*time.Second, "length of audio to render")
	channelsFlag = flag.Int("channels", 1, "output channels, each gets the same signal")
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("render: ")
	ef := cli.RegisterEngineFlags(flag.CommandLine)
	flag.Parse()

	opts, err := ef.Options()
	if err != nil {
		log.Fatal(err)
	}
	mapping, err := ef.Mapping()
	if err != nil {
		log.Fatal(err)
	}
	filename := *outFlag
	if filename == "" {
		filename = fmt.Sprintf("out-%d.wav", time.Now().Unix())
	}
	frames := int(durFlag.Seconds() * param.SampleRate)
	if frames <= 0 {
		log.Fatalf("-dur must be positive, got %v", *durFlag)
	}

	eng, _ := crazysynth.New(ef.Params(), opts...)
	fmt.Fprintf(os.Stderr, "%s\n", cli.Status(ef.Params(), mapping))
	fmt.Fprintf(os.Stderr, "Writing %s samples to %q\n", cli.Count(uint64(frames)), filename)

	f, err := os.Create(filename)
	if err != nil {
		log.Fatal(err)
	}
	if err := audio.Render(f, eng, frames, *channelsFlag); err != nil {
		f.Close()
		log.Fatalf("Rendering: %v", err)
	}
	if err := f.Close(); err != nil {
		log.Fatal(err)
	}
}
