package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bsm/redislock"
	"github.com/google/uuid"
	"github.com/mmdatafocus/chms_sampledata/appctx"
	"github.com/mmdatafocus/chms_sampledata/config"
	"github.com/mmdatafocus/chms_sampledata/importer"
	"github.com/mmdatafocus/chms_sampledata/models"
	"github.com/mmdatafocus/chms_sampledata/store"
)

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getenvInt64(key string, def int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}

func getenvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func main() {
	// Env-first, flags override env for convenience.
	file := flag.String("file", getenv("IMPORT_FILE", ""), "Path to the sample data XML document (required)")
	deleteExisting := flag.Bool("delete-existing", getenvBool("IMPORT_DELETE_EXISTING", true), "Delete previously imported data for the document's families first")
	enableGiving := flag.Bool("giving", getenvBool("IMPORT_GIVING", true), "Generate financial contribution history")
	fabricateAttendance := flag.Bool("attendance", getenvBool("IMPORT_ATTENDANCE", true), "Generate attendance history")
	onlyGiving := flag.Bool("only-giving", getenvBool("IMPORT_ONLY_GIVING", false), "Skip creation and regenerate giving for already imported people")
	seed := flag.Int64("seed", getenvInt64("IMPORT_SEED", 0), "Randomizer seed (0 = time-based)")
	password := flag.String("login-password", getenv("IMPORT_LOGIN_PASSWORD", ""), "Password for generated logins (empty = no logins)")
	timing := flag.Bool("timing", getenvBool("IMPORT_TIMING", false), "Log per-step timing")
	useRedis := flag.Bool("redis", getenvBool("IMPORT_USE_REDIS", false), "Connect Redis for the run lock and cache invalidation")
	flag.Parse()

	if strings.TrimSpace(*file) == "" {
		fmt.Fprintln(os.Stderr, "missing required document path: set IMPORT_FILE or pass --file")
		os.Exit(2)
	}

	logger := config.GetLogger()
	ctx := context.Background()
	ctx = appctx.Set(ctx, appctx.ContextKeyCorrelationId, uuid.NewString())
	if aliasId := getenvInt64("IMPORT_CREATOR_ALIAS_ID", 0); aliasId > 0 {
		ctx = appctx.Set(ctx, appctx.ContextKeyCreatorAliasId, int(aliasId))
	}

	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil)")
		os.Exit(1)
	}
	models.MigrateTable()

	// One import at a time; concurrent runs would race on the shared
	// find-or-create rows.
	if *useRedis {
		config.ConnectRedisWithRetry()
		lock, err := config.GetRedisLock().Obtain(ctx, "sampledata-import:run", 30*time.Minute, &redislock.Options{
			RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(2*time.Second), 5),
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "another import appears to be running: %v\n", err)
			os.Exit(1)
		}
		defer lock.Release(ctx)
	}

	f, err := os.Open(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open document: %v\n", err)
		os.Exit(1)
	}
	doc, err := importer.ParseDocument(f)
	f.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse document: %v\n", err)
		os.Exit(1)
	}

	manager, err := importer.NewManager(store.NewGormStore(db), importer.NewHTTPFetcher(), logger, importer.Options{
		DeleteExistingData:      *deleteExisting,
		ProcessOnlyGivingData:   *onlyGiving,
		EnableGiving:            *enableGiving,
		FabricateAttendance:     *fabricateAttendance,
		EnableTimingDiagnostics: *timing,
		RandomizerSeed:          *seed,
		NewLoginPassword:        *password,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "configure import: %v\n", err)
		os.Exit(1)
	}

	started := time.Now()
	if err := manager.CreateFromDocument(ctx, doc); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Import complete in %s\n", time.Since(started).Round(time.Millisecond))
}
