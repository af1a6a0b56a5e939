package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"

	"portsanantonio/internal/auth"
	"portsanantonio/internal/db"
	"portsanantonio/internal/menu"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jaswdr/faker"
	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Loads the reference menu and optional generated dishes",
	Long: `seed fills the dish store with the reference categories and dishes,
optionally followed by generated dishes for load testing, and can create the
first ADMIN staff account.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().String("dish-store", "postgres", "Dish store to seed (postgres or sqlite)")
	rootCmd.Flags().String("database-url", "", "PostgreSQL connection string")
	rootCmd.Flags().String("sqlite-path", "menu.db", "SQLite file when --dish-store=sqlite")
	rootCmd.Flags().Int("fake-dishes", 0, "Number of generated dishes to add")
	rootCmd.Flags().Int("seed", 42, "Random seed for generated dishes")
	rootCmd.Flags().String("admin-email", "", "Create this ADMIN account when missing")
	rootCmd.Flags().String("admin-password", "", "Password for --admin-email")
	rootCmd.Flags().Bool("dry-run", false, "Seed an in-memory store and print what would be written")

	_ = viper.BindPFlags(rootCmd.Flags())
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bulkCreator is implemented by stores that can load many dishes at once.
type bulkCreator interface {
	BulkCreateDishes(ctx context.Context, dishes []menu.Dish) error
}

func run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		repo menu.Repository
		pool *pgxpool.Pool
	)

	switch {
	case viper.GetBool("dry-run"):
		repo = menu.NewInMemoryRepository()
	case viper.GetString("dish-store") == "sqlite":
		conn, err := db.OpenSQLite(viper.GetString("sqlite-path"))
		if err != nil {
			return err
		}
		defer conn.Close()
		repo = menu.NewSQLiteRepository(conn)
	case viper.GetString("dish-store") == "postgres":
		var err error
		pool, err = db.ConnectPostgres(ctx, viper.GetString("database-url"))
		if err != nil {
			return err
		}
		defer pool.Close()
		repo = menu.NewPostgresRepository(pool)
	default:
		return fmt.Errorf("unknown dish store %q", viper.GetString("dish-store"))
	}

	categories := menu.SampleCategories()
	for i := range categories {
		if err := repo.UpsertCategory(ctx, &categories[i]); err != nil {
			return fmt.Errorf("upsert category %s: %w", categories[i].ID, err)
		}
	}

	dishes := menu.SampleDishes()
	if n := viper.GetInt("fake-dishes"); n > 0 {
		f := faker.NewWithSeed(rand.NewSource(viper.GetInt64("seed")))
		dishes = append(dishes, fakeDishes(f, n, categories)...)
	}

	existing, err := repo.ListDishes(ctx)
	if err != nil {
		return err
	}
	dishes = missing(dishes, existing)

	if err := load(ctx, repo, dishes); err != nil {
		return err
	}
	log.Printf("[SEED] %d categories, %d new dishes", len(categories), len(dishes))

	if email := viper.GetString("admin-email"); email != "" {
		if pool == nil {
			return fmt.Errorf("--admin-email needs the postgres store")
		}
		svc := auth.NewService(auth.NewPostgresUserRepository(pool))
		created, err := svc.EnsureAdmin(ctx, "Administrator", email, viper.GetString("admin-password"))
		if err != nil {
			return fmt.Errorf("bootstrap admin: %w", err)
		}
		log.Printf("[SEED] admin %s created=%v", email, created)
	}

	if viper.GetBool("dry-run") {
		all, _ := repo.ListDishes(ctx)
		for _, d := range all {
			fmt.Printf("%-28s %-10s %s\n", d.ID, d.CategoryID, d.Name)
		}
	}
	return nil
}

const bulkChunk = 200

func load(ctx context.Context, repo menu.Repository, dishes []menu.Dish) error {
	bar := progressbar.Default(int64(len(dishes)), "seeding dishes")
	defer bar.Finish()

	if bulk, ok := repo.(bulkCreator); ok {
		for start := 0; start < len(dishes); start += bulkChunk {
			end := min(start+bulkChunk, len(dishes))
			if err := bulk.BulkCreateDishes(ctx, dishes[start:end]); err != nil {
				return fmt.Errorf("bulk insert: %w", err)
			}
			_ = bar.Add(end - start)
		}
		return nil
	}

	for i := range dishes {
		if err := repo.CreateDish(ctx, &dishes[i]); err != nil {
			return fmt.Errorf("create %s: %w", dishes[i].ID, err)
		}
		_ = bar.Add(1)
	}
	return nil
}

func missing(dishes, existing []menu.Dish) []menu.Dish {
	have := make(map[string]bool, len(existing))
	for _, d := range existing {
		have[d.ID] = true
	}

	out := make([]menu.Dish, 0, len(dishes))
	for _, d := range dishes {
		if have[d.ID] {
			continue
		}
		have[d.ID] = true
		out = append(out, d)
	}
	return out
}
