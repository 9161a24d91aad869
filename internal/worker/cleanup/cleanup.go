// Package cleanup は期限切れセッションの自動削除ジョブを提供する。
// ファイル・メモリバックエンドは自動失効しないため、定期的にPurgeExpiredを
// 呼び出して掃除する。RedisバックエンドはTTLで失効するため削除件数は常に0。
package cleanup

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// SessionPurger は期限切れセッションの削除に必要なインターフェース。
// session.Storeの部分集合として定義する。
type SessionPurger interface {
	PurgeExpired(ctx context.Context) (int, error)
}

// PurgeRecorder は破棄件数のメトリクス記録インターフェース。
type PurgeRecorder interface {
	RecordSessionsPurged(count int)
}

// CleanupJob は期限切れセッションの自動削除ジョブ。
// 定期実行のバッチジョブとして設計されており、冪等な削除処理を保証する。
type CleanupJob struct {
	store   SessionPurger
	logger  *slog.Logger
	metrics PurgeRecorder // nil可
}

// NewCleanupJob は新しいCleanupJobを生成する。
func NewCleanupJob(store SessionPurger, logger *slog.Logger, metrics PurgeRecorder) *CleanupJob {
	return &CleanupJob{
		store:   store,
		logger:  logger,
		metrics: metrics,
	}
}

// Run は期限切れセッションを削除する。
// 冪等: 削除対象がない場合でもエラーにならない。
func (j *CleanupJob) Run(ctx context.Context) error {
	start := time.Now()

	purged, err := j.store.PurgeExpired(ctx)
	if err != nil {
		j.logger.Error("セッションクリーンアップジョブの実行に失敗しました",
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("セッションクリーンアップの実行に失敗: %w", err)
	}

	if j.metrics != nil {
		j.metrics.RecordSessionsPurged(purged)
	}

	j.logger.Info("セッションクリーンアップジョブが完了しました",
		slog.Int("purged_count", purged),
		slog.Float64("duration_ms", float64(time.Since(start).Milliseconds())),
	)
	return nil
}

// RunPeriodic は指定間隔でRunを繰り返し実行する。
// コンテキストのキャンセルで停止する。起動直後にも1回実行する。
func (j *CleanupJob) RunPeriodic(ctx context.Context, interval time.Duration) {
	// 起動直後の1回。失敗してもログに残して継続する。
	if err := j.Run(ctx); err != nil {
		j.logger.Warn("初回クリーンアップに失敗しました", slog.String("error", err.Error()))
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.logger.Info("セッションクリーンアップジョブを停止します")
			return
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				j.logger.Warn("クリーンアップに失敗しました", slog.String("error", err.Error()))
			}
		}
	}
}
