package database

import (
	"fmt"
	"log"

	"exam_portal_backend/internal/config"
	"exam_portal_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// shouldAutoMigrate release 模式默认不碰表结构，迁移走 -migrate/-migrate-only；
// 其他模式每次启动都自动迁移
func shouldAutoMigrate(mode string, forceMigrate bool) bool {
	if mode == "release" {
		return forceMigrate
	}
	return true
}

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dbCfg := &cfg.Database
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		dbCfg.User,
		dbCfg.Password,
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.DBName,
		dbCfg.Charset,
		dbCfg.ParseTime,
	)

	// TranslateError 让重复键错误以 gorm.ErrDuplicatedKey 暴露，
	// 提交去重依赖这一点
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if shouldAutoMigrate(cfg.Server.Mode, cfg.ForceMigrate) {
		err = db.AutoMigrate(
			&model.User{},
			&model.StudentProfile{},
			&model.Exam{},
			&model.TestPaper{},
			&model.QuestionMCQ{},
			&model.QuestionMSQ{},
			&model.QuestionNumerical{},
			&model.ExamAttempt{},
			&model.QuestionOutcome{},
		)

		if err != nil {
			return nil, err
		}

		log.Println("Database migration completed")
	}

	return db, nil
}
