package database

import (
	"fmt"
	stdlog "log"
	"strings"
	"time"

	"github.com/rpupo63/folio-backend/config"
	"github.com/rpupo63/folio-backend/models"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

type Database struct {
	userRepo           *UserRepo
	profileRepo        *ProfileRepo
	skillRepo          *SkillRepo
	projectRepo        *ProjectRepo
	experienceRepo     *ExperienceRepo
	educationRepo      *EducationRepo
	categoryRepo       *CategoryRepo
	tagRepo            *TagRepo
	blogPostRepo       *BlogPostRepo
	commentRepo        *CommentRepo
	contactMessageRepo *ContactMessageRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		userRepo:           NewUserRepo(db),
		profileRepo:        NewProfileRepo(db),
		skillRepo:          NewSkillRepo(db),
		projectRepo:        NewProjectRepo(db),
		experienceRepo:     NewExperienceRepo(db),
		educationRepo:      NewEducationRepo(db),
		categoryRepo:       NewCategoryRepo(db),
		tagRepo:            NewTagRepo(db),
		blogPostRepo:       NewBlogPostRepo(db),
		commentRepo:        NewCommentRepo(db),
		contactMessageRepo: NewContactMessageRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) ProfileRepo() *ProfileRepo {
	return d.profileRepo
}

func (d Database) SkillRepo() *SkillRepo {
	return d.skillRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) ExperienceRepo() *ExperienceRepo {
	return d.experienceRepo
}

func (d Database) EducationRepo() *EducationRepo {
	return d.educationRepo
}

func (d Database) CategoryRepo() *CategoryRepo {
	return d.categoryRepo
}

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}

func (d Database) BlogPostRepo() *BlogPostRepo {
	return d.blogPostRepo
}

func (d Database) CommentRepo() *CommentRepo {
	return d.commentRepo
}

func (d Database) ContactMessageRepo() *ContactMessageRepo {
	return d.contactMessageRepo
}

// Open connects to the database selected by DB_TYPE.
//
//	postgres  DATABASE_URL, or DB_HOST/DB_USER/DB_PASSWORD/DB_NAME/DB_PORT
//	supa      SUPABASE_DB_* with sslmode=require
//	sqlite    SQLITE_PATH (default folio.db)
//
// DB_REPLICA_DSNS registers comma separated postgres read replicas.
func Open(c config.Config) (*gorm.DB, error) {
	dbType := strings.ToLower(config.GetString(c, "DB_TYPE", "sqlite"))

	var dialector gorm.Dialector
	switch dbType {
	case "postgres":
		dialector = postgresDialector(config.GetString(c, "DATABASE_URL", fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			config.GetString(c, "DB_HOST", "localhost"),
			config.GetString(c, "DB_USER", "postgres"),
			config.GetString(c, "DB_PASSWORD", ""),
			config.GetString(c, "DB_NAME", "folio"),
			config.GetString(c, "DB_PORT", "5432"),
			config.GetString(c, "DB_SSLMODE", "disable"),
		)))
	case "supa":
		dialector = postgresDialector(fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
			config.GetString(c, "SUPABASE_DB_HOST", ""),
			config.GetString(c, "SUPABASE_DB_USER", ""),
			config.GetString(c, "SUPABASE_DB_PASSWORD", ""),
			config.GetString(c, "SUPABASE_DB_NAME", ""),
			config.GetString(c, "SUPABASE_DB_PORT", "5432"),
		))
	case "sqlite":
		dialector = sqlite.Open(SQLiteDSN(config.GetString(c, "SQLITE_PATH", "folio.db")))
	default:
		return nil, fmt.Errorf("unsupported DB_TYPE %q", dbType)
	}

	log.Info().Str("dbType", dbType).Msg("Connecting to database...")
	db, err := gorm.Open(dialector, &gorm.Config{
		PrepareStmt: false,
		Logger:      newGormLogger(config.GetBool(c, "DB_DEBUG", false)),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if replicas := config.GetStrings(c, "DB_REPLICA_DSNS"); len(replicas) > 0 && dbType != "sqlite" {
		dialectors := make([]gorm.Dialector, 0, len(replicas))
		for _, dsn := range replicas {
			dialectors = append(dialectors, postgresDialector(dsn))
		}
		if err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: dialectors,
			Policy:   dbresolver.RandomPolicy{},
		})); err != nil {
			return nil, fmt.Errorf("register read replicas: %w", err)
		}
		log.Info().Int("replicas", len(dialectors)).Msg("Registered read replicas")
	}

	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("test database connection: %w", err)
	}
	return db, nil
}

// SQLiteDSN turns a path into a DSN with foreign keys enforced, which the
// cascade and set-null rules of the schema rely on.
func SQLiteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}

func postgresDialector(dsn string) gorm.Dialector {
	return postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	})
}

func newGormLogger(debug bool) logger.Interface {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	writer := log.With().Str("component", "gorm").Logger()
	return logger.New(
		stdlog.New(writer, "", 0),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// Migrate creates or updates the tables of every entity
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
