package main

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/thai-address-parser/app/bootstrap"
	"github.com/thai-address-parser/app/config"
	"github.com/thai-address-parser/app/requests"
	"github.com/thai-address-parser/app/services"
	"github.com/thai-address-parser/helpers/utils"
	"go.uber.org/zap"
)

// Worker đọc file địa chỉ (WORKER_INPUT, mỗi dòng một địa chỉ) và ghi kết
// quả NDJSON ra WORKER_OUTPUT.
func main() {
	appCfg, err := config.LoadApp(os.Getenv("APP_CONFIG"))
	if err != nil {
		log.Fatal("Cannot load config: ", err)
	}
	parserCfg, err := config.Load(appCfg.ParserConfig)
	if errors.Is(err, os.ErrNotExist) {
		parserCfg, err = config.Load("")
	}
	if err != nil {
		log.Fatal("Cannot load parser config: ", err)
	}

	logger, err := utils.NewLogger(appCfg.Env)
	if err != nil {
		log.Fatal("Cannot initialize logger: ", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	components, err := bootstrap.Build(ctx, parserCfg, bootstrap.Options{}, logger)
	if err != nil {
		logger.Fatal("Failed to build parser components", zap.Error(err))
	}
	addressService := services.NewAddressService(components, nil, logger)

	in, closeIn, err := openInput(appCfg.WorkerInput)
	if err != nil {
		logger.Fatal("Cannot open input", zap.String("input", appCfg.WorkerInput), zap.Error(err))
	}
	defer closeIn()

	out, closeOut, err := openOutput(appCfg.WorkerOutput)
	if err != nil {
		logger.Fatal("Cannot open output", zap.String("output", appCfg.WorkerOutput), zap.Error(err))
	}

	logger.Info("Starting Thai Address Parser Worker",
		zap.String("input", appCfg.WorkerInput),
		zap.String("output", appCfg.WorkerOutput),
		zap.Int("workers", parserCfg.BatchWorkers))

	start := time.Now()
	n, err := addressService.ProcessStream(ctx, in, out, requests.ParseOptions{}, services.DefaultChunkSize)
	if cerr := closeOut(); err == nil {
		err = cerr
	}
	if err != nil {
		logger.Fatal("Worker failed", zap.Int("processed", n), zap.Error(err))
	}
	logger.Info("Worker exited", zap.Int("processed", n), zap.Duration("took", time.Since(start)))
}

func openInput(path string) (io.Reader, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdin, func() error { return nil }, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

// openOutput ghi qua bufio, hàm close flush rồi đóng file
func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		w := bufio.NewWriter(os.Stdout)
		return w, w.Flush, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	w := bufio.NewWriter(f)
	return w, func() error {
		if err := w.Flush(); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}, nil
}
