package compose

import (
	"context"
	"fmt"
	"image"

	"github.com/M4cs/beetlegame-webp/record"
)

// Sink 接收合成完成的卡面，例如写入输出目录。
type Sink interface {
	Write(rec record.Record, index int, img image.Image) error
}

// Failure 记录单张卡的失败原因。
type Failure struct {
	Index int
	Label string
	Err   error
}

func (f Failure) Error() string {
	return fmt.Sprintf("第 %d 行 (%s): %v", f.Index+1, f.Label, f.Err)
}

func (f Failure) Unwrap() error { return f.Err }

// Summary 汇总一次批处理的结果。部分成功（N-1/N）是正常的结束状态。
type Summary struct {
	Total    int
	Rendered int
	Failed   []Failure
}

// Batch 逐条串行渲染记录，每张卡使用独立的 Surface。
type Batch struct {
	Composer *Composer
	Sink     Sink
}

// Run 渲染所有记录。单张卡失败只记录日志，批处理继续；不做重试。
func (b *Batch) Run(ctx context.Context, recs []record.Record) Summary {
	sum := Summary{Total: len(recs)}
	for i, rec := range recs {
		if err := b.renderOne(ctx, i, rec); err != nil {
			f := Failure{Index: i, Label: rec.Label(), Err: err}
			Logger().Error("卡片渲染失败", "row", i+1, "card", f.Label, "error", err)
			sum.Failed = append(sum.Failed, f)
			continue
		}
		sum.Rendered++
	}
	return sum
}

func (b *Batch) renderOne(ctx context.Context, index int, rec record.Record) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	s, err := b.Composer.Compose(ctx, rec)
	if err != nil {
		return err
	}
	if b.Sink == nil {
		return nil
	}
	return b.Sink.Write(rec, index, s.Image())
}
