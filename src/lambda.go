package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/kyohenrique/pokedex/src/config"
	"github.com/kyohenrique/pokedex/src/export"
)

// startLambda serves the scheduler or exporter handler. The bucket and region
// come from BUCKET_NAME and AWS_REGION when set.
func startLambda(handler string) error {
	cfg, err := config.Load(os.Getenv("POKEDEX_CONFIG"))
	if err != nil {
		return err
	}
	if bucket := os.Getenv("BUCKET_NAME"); bucket != "" {
		cfg.Export.Bucket = bucket
	}
	if region := os.Getenv("AWS_REGION"); region != "" {
		cfg.Export.Region = region
	}
	sugar, err := newLogger(cfg.Log, "")
	if err != nil {
		return err
	}
	defer syncLogger(sugar)

	switch handler {
	case "scheduler":
		lambda.Start(func(ctx context.Context, request export.ScheduleRequest) ([]export.Schedule, error) {
			return export.ScheduleTasks(sugar, request)
		})
	case "exporter", "scraper":
		if cfg.Export.Bucket == "" {
			return fmt.Errorf("the %s handler needs BUCKET_NAME", handler)
		}
		sink, err := newSink(context.Background(), cfg.Export)
		if err != nil {
			return err
		}
		exporter := newExporter(cfg, sink, sugar)
		lambda.Start(func(ctx context.Context, schedule export.Schedule) (*export.Result, error) {
			return exporter.Run(ctx, schedule)
		})
	default:
		return fmt.Errorf("unknown handler %q", handler)
	}
	return nil
}
