package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jose-c-campos/usc-scheduler/config"
	"github.com/jose-c-campos/usc-scheduler/internal/model"
	"github.com/jose-c-campos/usc-scheduler/internal/service"
)

// defaultClassSpots 未指定 --class-spots 时使用的演示选课组合
const defaultClassSpots = "CSCI 103,CSCI 104 | WRIT 150 | BISC 120,MATH 126 | CSCI 170"

var rootFlags struct {
	configPath  string
	classSpots  string
	preferences string
	jsonOut     bool
	topN        int
	icsPath     string
	xlsxPath    string

	dbName     string
	dbUser     string
	dbPassword string
	dbHost     string
	dbPort     int
	semester   string
}

var rootCmd = &cobra.Command{
	Use:   "usc-scheduler",
	Short: "USC 周课表生成引擎",
	Long: `根据 spot 候选课程与个人偏好，从课程目录库枚举无冲突课表，
打分后贪心挑出互不相似的前 N 张。

选课组合格式：spot 之间以 "|" 分隔，spot 内候选课程以 "," 分隔，
字面量 NONE 表示空 spot。`,
	Run: func(cmd *cobra.Command, args []string) {
		runBuild()
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&rootFlags.configPath, "config", "", "配置文件路径（默认搜索 ./config/config.yaml）")
	f.StringVar(&rootFlags.dbName, "db-name", "", "目录库名称（默认 usc_sched）")
	f.StringVar(&rootFlags.dbUser, "db-user", "", "目录库用户名")
	f.StringVar(&rootFlags.dbPassword, "db-password", "", "目录库密码")
	f.StringVar(&rootFlags.dbHost, "db-host", "", "目录库主机（默认 localhost）")
	f.IntVar(&rootFlags.dbPort, "db-port", 0, "目录库端口（默认 5432）")
	f.StringVar(&rootFlags.semester, "semester", "", "学期代码（默认 20253）")

	b := rootCmd.Flags()
	b.StringVar(&rootFlags.classSpots, "class-spots", defaultClassSpots, "spot 候选课程列表")
	b.StringVar(&rootFlags.preferences, "preferences", "", "偏好串（6 个管道分隔字段）")
	b.BoolVar(&rootFlags.jsonOut, "json", false, "以 JSON 输出到 stdout")
	b.IntVar(&rootFlags.topN, "top-n", 0, "返回课表数量（默认取配置 engine.top_n）")
	b.StringVar(&rootFlags.icsPath, "ics", "", "把最佳课表写为 iCalendar 文件")
	b.StringVar(&rootFlags.xlsxPath, "xlsx", "", "把全部课表写为 Excel 文件")
}

// loadConfig 加载配置并套用命令行覆盖
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(rootFlags.configPath)
	if err != nil {
		return nil, err
	}

	if rootFlags.dbName != "" {
		cfg.Database.Name = rootFlags.dbName
	}
	if rootFlags.dbUser != "" {
		cfg.Database.User = rootFlags.dbUser
	}
	if rootFlags.dbPassword != "" {
		cfg.Database.Password = rootFlags.dbPassword
	}
	if rootFlags.dbHost != "" {
		cfg.Database.Host = rootFlags.dbHost
	}
	if rootFlags.dbPort > 0 {
		cfg.Database.Port = rootFlags.dbPort
	}
	if rootFlags.semester != "" {
		cfg.Semester = rootFlags.semester
	}
	return cfg, nil
}

// runBuild 执行一次排课并输出结果
func runBuild() {
	cfg, err := loadConfig()
	if err != nil {
		fatal(err)
	}

	a, err := newApp(cfg)
	if err != nil {
		fatal(err)
	}
	defer a.close()

	topN := rootFlags.topN
	if topN <= 0 {
		topN = cfg.Engine.TopN
	}

	classSpots := model.ParseClassSpots(rootFlags.classSpots)
	prefs := model.ParsePreferences(rootFlags.preferences)

	ctx := context.Background()
	schedules, err := a.scheduler.BuildSchedules(ctx, classSpots, prefs, topN)
	if err != nil && !errors.Is(err, service.ErrNoValidSchedules) {
		a.logger.Error("排课失败", zap.Error(err))
		fatal(err)
	}

	resp := a.presenter.Render(ctx, schedules)

	if rootFlags.jsonOut {
		enc := json.NewEncoder(os.Stdout)
		if err := enc.Encode(resp); err != nil {
			fatal(err)
		}
	} else {
		fmt.Print(a.presenter.RenderText(resp))
	}

	// 附加导出：失败只告警，不影响主输出
	if rootFlags.icsPath != "" && len(schedules) > 0 {
		if content, err := service.ExportICS(schedules[0].Schedule, time.Now()); err != nil {
			a.logger.Warn("ICS 导出失败", zap.Error(err))
		} else if err := os.WriteFile(rootFlags.icsPath, []byte(content), 0o644); err != nil {
			a.logger.Warn("ICS 文件写入失败", zap.Error(err))
		}
	}
	if rootFlags.xlsxPath != "" && len(resp.Schedules) > 0 {
		if buf, _, err := service.ExportXLSX(resp, cfg.Semester); err != nil {
			a.logger.Warn("Excel 导出失败", zap.Error(err))
		} else if err := os.WriteFile(rootFlags.xlsxPath, buf.Bytes(), 0o644); err != nil {
			a.logger.Warn("Excel 文件写入失败", zap.Error(err))
		}
	}
}

// fatal 按输出模式报告致命错误并退出
func fatal(err error) {
	if rootFlags.jsonOut {
		json.NewEncoder(os.Stdout).Encode(map[string]string{"error": err.Error()})
	} else {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
	}
	os.Exit(1)
}
