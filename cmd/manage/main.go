// Command manage runs maintenance tasks against the notification store.
//
//	manage check-tokens [-delete]
//	manage set-notification-type -name safeCreation [-android 0] [-ios 10] [-extension -1]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/5afe/safe-notification-service/config"
	"github.com/5afe/safe-notification-service/internal/app"
	"github.com/5afe/safe-notification-service/internal/device"
	"github.com/5afe/safe-notification-service/internal/device/usecase"
	"github.com/5afe/safe-notification-service/internal/messaging"
	"github.com/5afe/safe-notification-service/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	appLogger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer appLogger.Sync()

	ctx := context.Background()
	uc, closeFn, err := newUsecase(ctx, cfg, *appLogger)
	if err != nil {
		log.Fatalf("setup: %v", err)
	}
	defer closeFn()

	switch os.Args[1] {
	case "check-tokens":
		err = checkTokens(ctx, uc, os.Args[2:])
	case "set-notification-type":
		err = setNotificationType(ctx, uc, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		appLogger.Error("command failed", "command", os.Args[1], "err", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: manage check-tokens [-delete] | set-notification-type -name NAME [-android N] [-ios N] [-extension N]")
}

func newUsecase(ctx context.Context, cfg *config.Config, log logger.Logger) (device.DeviceUsecase, func(), error) {
	repo, closeRepo, err := app.NewRepository(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	client, err := messaging.NewClient(ctx, cfg, log)
	if err != nil {
		closeRepo()
		return nil, nil, err
	}
	// maintenance never enqueues deliveries
	return usecase.NewDeviceUsecase(repo, client, nil, log, *cfg), closeRepo, nil
}

func checkTokens(ctx context.Context, uc device.DeviceUsecase, args []string) error {
	fs := flag.NewFlagSet("check-tokens", flag.ExitOnError)
	clear := fs.Bool("delete", false, "remove invalid tokens from their devices")
	if err := fs.Parse(args); err != nil {
		return err
	}

	res, err := uc.CheckPushTokens(ctx, *clear)
	if err != nil {
		return err
	}
	fmt.Printf("checked %d tokens, %d invalid\n", res.Checked, len(res.Invalid))
	for _, owner := range res.Invalid {
		fmt.Println(owner)
	}
	if res.Cleared {
		fmt.Println("invalid tokens removed")
	}
	return nil
}

// threshold is a minimum build number flag where a negative value disables
// the client.
func threshold(v int) *int {
	if v < 0 {
		return nil
	}
	return &v
}

func setNotificationType(ctx context.Context, uc device.DeviceUsecase, args []string) error {
	fs := flag.NewFlagSet("set-notification-type", flag.ExitOnError)
	name := fs.String("name", "", "notification type, matched against the message type field")
	description := fs.String("description", "", "human readable description")
	android := fs.Int("android", -1, "minimum android build, negative disables")
	ios := fs.Int("ios", -1, "minimum ios build, negative disables")
	extension := fs.Int("extension", -1, "minimum extension build, negative disables")
	if err := fs.Parse(args); err != nil {
		return err
	}

	err := uc.SetNotificationType(ctx, device.SetNotificationTypeCommand{
		Name:        *name,
		Description: *description,
		Android:     threshold(*android),
		IOS:         threshold(*ios),
		Extension:   threshold(*extension),
	})
	if err != nil {
		return err
	}
	fmt.Printf("notification type %q stored\n", *name)
	return nil
}
