package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/binzume/weightmirror/config"
)

func defaultOutputFile(input string) string {
	ext := filepath.Ext(input)
	return input[0:len(input)-len(ext)] + "_mirrored" + ext
}

func loadConfig(input, confFile string) (*config.Config, error) {
	if confFile == "" {
		confFile = config.FindFile(input)
	}
	conf := config.Default()
	if confFile != "" {
		var err error
		if conf, err = config.Load(confFile); err != nil {
			return nil, err
		}
		log.Println("Config:", confFile)
	}
	if err := conf.ApplyEnv(); err != nil {
		return nil, err
	}
	return conf, nil
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s input.mqo [output.mqo]\n", os.Args[0])
		flag.PrintDefaults()
	}
	confFile := flag.String("config", "", "config file (default: input.mirrorconfig.yaml)")
	src := flag.String("src", "", "source bone suffix (default _R)")
	dst := flag.String("dst", "", "target bone suffix (default _L)")
	axis := flag.String("axis", "", "mirror axis x, y or z (default x)")
	eps := flag.Float64("eps", 0, "max distance to the mirrored vertex (default 0.0001)")
	workers := flag.Int("workers", 0, "number of bone pairs mirrored in parallel")
	objects := flag.String("objects", "", "comma separated object names")
	dryRun := flag.Bool("dryrun", false, "report only")
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		return
	}
	input := flag.Arg(0)
	output := defaultOutputFile(input)
	if flag.NArg() > 1 {
		output = flag.Arg(1)
	}

	conf, err := loadConfig(input, *confFile)
	if err != nil {
		log.Fatal(err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "src":
			conf.SourceSuffix = *src
		case "dst":
			conf.TargetSuffix = *dst
		case "axis":
			conf.Axis = *axis
		case "eps":
			conf.Epsilon = *eps
		case "workers":
			conf.Workers = *workers
		case "objects":
			conf.Objects = strings.Split(*objects, ",")
		}
	})

	if !*dryRun && sameFile(input, output) {
		log.Fatal("output file must be different from input: ", output)
	}

	if err := mirrorFile(input, output, conf, *dryRun); err != nil {
		log.Fatal(err)
	}
}

func sameFile(a, b string) bool {
	a, _ = filepath.Abs(a)
	b, _ = filepath.Abs(b)
	return a == b
}
