// Package assets 解析卡面使用的外部图片：插画（URL 或本地路径）与按元素区分的背景模板。
package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// ErrNotFound 表示引用为空或目标资源不存在。
var ErrNotFound = errors.New("资源不存在")

// DefaultTimeout 是下载插画的默认超时。
const DefaultTimeout = 10 * time.Second

// Artwork 解析插画引用：http(s) 地址通过网络下载，其余按本地路径读取。
type Artwork struct {
	BaseDir string
	Client  *http.Client
}

// NewArtwork 创建使用给定超时的解析器。
func NewArtwork(baseDir string, timeout time.Duration) *Artwork {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Artwork{BaseDir: baseDir, Client: &http.Client{Timeout: timeout}}
}

// Resolve 下载或读取并解码插画。
func (a *Artwork) Resolve(ctx context.Context, ref string) (image.Image, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrNotFound
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return a.download(ctx, ref)
	}
	return decodeFile(resolvePath(a.BaseDir, ref))
}

func (a *Artwork) download(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	client := a.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("下载插画 %s 失败: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("下载插画 %s: %w", url, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("下载插画 %s: 状态码 %d", url, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取插画 %s 失败: %w", url, err)
	}
	img, err := imaging.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("解码插画 %s 失败: %w", url, err)
	}
	return img, nil
}

// Templates 按元素名查找背景模板：<Dir>/<小写元素名><Ext>。
type Templates struct {
	Dir string
	Ext string
}

// Resolve 读取元素对应的模板图片。
func (t *Templates) Resolve(_ context.Context, element string) (image.Image, error) {
	name := strings.ToLower(strings.TrimSpace(element))
	if name == "" || t.Dir == "" {
		return nil, ErrNotFound
	}
	ext := t.Ext
	if ext == "" {
		ext = ".png"
	}
	return decodeFile(filepath.Join(t.Dir, filepath.Base(name)+ext))
}

func resolvePath(baseDir, ref string) string {
	if filepath.IsAbs(ref) || baseDir == "" {
		return ref
	}
	return filepath.Join(baseDir, ref)
}

func decodeFile(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("读取图片 %s 失败: %w", path, err)
	}
	return img, nil
}
