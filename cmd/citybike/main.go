package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	citybike "github.com/rowaidaawad07-sudo/citybike-project"
)

func main() {
	tripsFile := flag.String("trips", "trips.csv", "trips csv file path")
	stationsFile := flag.String("stations", "stations.csv", "stations csv file path")
	maintFile := flag.String("maintenance", "maintenance.csv", "maintenance csv file path")
	concurrency := flag.Int("c", 0, "compute workers (0 = number of CPUs)")
	threshold := flag.Float64("z", 0, "z-score outlier threshold (0 = default)")
	series := flag.String("series", "", "outlier series: duration or distance (empty = default)")
	flag.Parse()

	data := citybike.Dataset{
		Stations:    loadRecords(*stationsFile),
		Trips:       loadRecords(*tripsFile),
		Maintenance: loadRecords(*maintFile),
	}

	conf := citybike.DefaultConfig()
	if *concurrency > 0 {
		conf.Concurrency = *concurrency
	}
	if *threshold > 0 {
		conf.ZScoreThreshold = *threshold
	}
	if *series != "" {
		conf.OutlierSeries = *series
	}

	system, err := citybike.NewSystem(data, conf)
	if err != nil {
		log.Fatalf("NewSystem: %s\n", err)
	}

	ctx, stop := context.WithCancel(context.Background())

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint
		stop()
	}()

	if err := system.Run(ctx); err != nil {
		log.Fatalf("run: %s\n", err)
	}

	report, err := system.Report()
	if err != nil {
		log.Fatalf("report: %s\n", err)
	}
	if err := report.WriteText(os.Stdout); err != nil {
		log.Fatalf("write report: %s\n", err)
	}

	fmt.Printf("%d records rejected, see report above\n", len(report.Rejections))
}

// loadRecords reads a csv file with a header row into named records.
func loadRecords(path string) []citybike.Record {
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("open %s: %s\n", path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Fatalf("close %s: %s\n", path, err)
		}
	}()

	in := csv.NewReader(f)
	header, err := in.Read()
	if err != nil {
		log.Fatalf("read %s header: %s\n", path, err)
	}

	var records []citybike.Record
	for {
		row, err := in.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("read %s: %s\n", path, err)
		}
		rec := make(citybike.Record, len(header))
		for i, field := range header {
			if i < len(row) {
				rec[field] = row[i]
			}
		}
		records = append(records, rec)
	}
	return records
}
