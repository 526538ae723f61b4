package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/M4cs/beetlegame-webp/assets"
	"github.com/M4cs/beetlegame-webp/compose"
	"github.com/M4cs/beetlegame-webp/config"
	"github.com/M4cs/beetlegame-webp/fonts"
	"github.com/M4cs/beetlegame-webp/layout"
	"github.com/M4cs/beetlegame-webp/output"
	"github.com/M4cs/beetlegame-webp/record"
	canvasrenderer "github.com/M4cs/beetlegame-webp/renderer/canvas"
	"github.com/M4cs/beetlegame-webp/server"
)

type options struct {
	configPath string
	input      string
	outDir     string
	pattern    string
	layoutFile string
	debug      bool
	debugJSON  string
	verbose    bool
	serve      bool
	addr       string
}

func main() {
	var opt options
	flag.StringVar(&opt.configPath, "config", "", "YAML 配置文件路径")
	flag.StringVar(&opt.input, "in", "cards.csv", "卡牌数据 CSV 路径")
	flag.StringVar(&opt.outDir, "out", "", "输出目录（覆盖配置 output.dir）")
	flag.StringVar(&opt.pattern, "pattern", "", "输出文件名模板，如 ${Name}.png")
	flag.StringVar(&opt.layoutFile, "layout", "", ".cardlayout 布局文件（覆盖配置 layout-file）")
	flag.BoolVar(&opt.debug, "debug", false, "绘制文本区域调试框")
	flag.StringVar(&opt.debugJSON, "debug-json", "", "生效布局的调试 JSON 输出路径")
	flag.BoolVar(&opt.verbose, "v", false, "输出调试日志")
	flag.BoolVar(&opt.serve, "serve", false, "以 HTTP 服务方式运行")
	flag.StringVar(&opt.addr, "addr", ":8080", "HTTP 监听地址")
	flag.Parse()

	setupLogger(opt.verbose)

	if err := run(context.Background(), opt); err != nil {
		log.Fatalf("生成卡面失败: %v", err)
	}
}

func setupLogger(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	l := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(l)
	compose.SetLogger(l)
}

// run 串联配置、布局、字体与批量渲染。返回的错误都是致命错误；
// 单张卡的失败只记录日志，不影响退出码。
func run(ctx context.Context, opt options) error {
	cfg, err := loadConfig(opt)
	if err != nil {
		return err
	}

	lay, err := cfg.Layout()
	if err != nil {
		return err
	}
	if opt.debugJSON != "" {
		if err := writeDebug(lay, opt.debugJSON); err != nil {
			return err
		}
	}

	composer, err := newComposer(cfg, lay)
	if err != nil {
		return err
	}

	if opt.serve {
		gin.SetMode(gin.ReleaseMode)
		r := gin.New()
		r.Use(gin.Recovery())
		server.New(composer, lay.Canvas, lay.Fields).RegisterRoutes(r)
		slog.Info("HTTP 服务已启动", "addr", opt.addr)
		return r.Run(opt.addr)
	}

	recs, err := record.LoadCSV(opt.input)
	if err != nil {
		return err
	}
	outDir := cfg.Path(cfg.Output.Dir)
	if opt.outDir != "" {
		outDir = opt.outDir
	}
	w, err := output.New(outDir, cfg.Output.Pattern)
	if err != nil {
		return err
	}

	batch := &compose.Batch{Composer: composer, Sink: w}
	sum := batch.Run(ctx, recs)
	slog.Info("批量渲染完成", "total", sum.Total, "rendered", sum.Rendered, "failed", len(sum.Failed), "dir", outDir)
	fmt.Printf("已生成 %d/%d 张卡面：%s\n", sum.Rendered, sum.Total, outDir)
	return nil
}

func loadConfig(opt options) (*config.Config, error) {
	cfg := config.Default()
	if opt.configPath != "" {
		var err error
		if cfg, err = config.Load(opt.configPath); err != nil {
			return nil, err
		}
	}
	if opt.layoutFile != "" {
		abs, err := filepath.Abs(opt.layoutFile)
		if err != nil {
			return nil, err
		}
		cfg.LayoutFile = abs
	}
	if opt.pattern != "" {
		cfg.Output.Pattern = opt.pattern
	}
	if opt.debug {
		cfg.Debug = true
	}
	return cfg, nil
}

// newComposer 注册字体并组装合成器。字体文件缺失只记录警告，对应字段回退到默认字体。
func newComposer(cfg *config.Config, lay *config.Layout) (*compose.Composer, error) {
	book, err := canvasrenderer.NewFontBook()
	if err != nil {
		return nil, fmt.Errorf("初始化字体失败: %w", err)
	}
	for _, src := range cfg.Fonts {
		blob, err := fonts.Read(src, cfg.BaseDir)
		if err == nil {
			err = book.Register(blob)
		}
		if err != nil {
			slog.Warn("字体加载失败，使用默认字体", "family", src.Family, "path", src.Path, "error", err)
			continue
		}
		slog.Debug("字体已注册", "family", src.Family)
	}

	artDir := cfg.Path(cfg.Artwork.Dir)
	if artDir == "" {
		artDir = cfg.BaseDir
	}
	c := &compose.Composer{
		Canvas:        lay.Canvas,
		Layout:        lay.Fields,
		Fonts:         book.Set(),
		NewSurface:    book.Factory(),
		Templates:     &assets.Templates{Dir: cfg.Path(cfg.Templates.Dir), Ext: cfg.Templates.Ext},
		Artwork:       assets.NewArtwork(artDir, cfg.ArtworkTimeout),
		TemplateField: cfg.Templates.Field,
		ArtworkField:  cfg.Artwork.Field,
		Debug:         cfg.Debug,
	}
	if lay.QR != nil {
		c.QR = &compose.QRCode{Rect: lay.QR.Rect, Field: lay.QR.Field}
	}
	return c, nil
}

func writeDebug(lay *config.Layout, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(lay.Canvas, lay.Fields, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
