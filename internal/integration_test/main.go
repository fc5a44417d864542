// 指示: miu200521358
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/miu200521358/mu_vrma_player/pkg/adapter/io_model/vrm"
	"github.com/miu200521358/mu_vrma_player/pkg/adapter/io_motion/vrma"
	"github.com/miu200521358/mu_vrma_player/pkg/infra/headless"
	"github.com/miu200521358/mu_vrma_player/pkg/usecase/minteractor"
	"github.com/miu200521358/mu_vrma_player/pkg/usecase/port/moutput"
)

const (
	batchOutputDirMode  = 0o755
	batchOutputFileMode = 0o644
	batchFPS            = 60
)

var targetAvatarPath = "C:/Codex/vrm/vrm1.0_ロンスカ女子.vrm"

var targetMotionPaths = []string{
	"C:/Codex/vrma/VRMA_01.vrma",
	// "C:/Codex/vrma/VRMA_02.vrma",
	// "C:/Codex/vrma/VRMA_03.vrma",
	// "C:/Codex/vrma/VRMA_04.vrma",
	// "C:/Codex/vrma/VRMA_05.vrma",
	// "C:/Codex/vrma/VRMA_06.vrma",
	// "C:/Codex/vrma/VRMA_07.vrma",
	// "C:/Codex/vrma/generic/walk_mixamo.glb",
}

// batchConfig はバッチ再生の実行設定を表す。
type batchConfig struct {
	AvatarPath string
	OutputRoot string
	Seconds    float64
	DryRun     bool
	FailFast   bool
}

// playbackEntry は1モーション分の入力情報を表す。
type playbackEntry struct {
	Index      int
	SourcePath string
	MotionName string
	ReportPath string
}

// playbackResult は1モーション分の再生結果を表す。
type playbackResult struct {
	Entry        playbackEntry
	Status       string
	Duration     time.Duration
	Err          error
	RetargetInfo string
}

// retargetProgressCollector はリターゲット進捗イベントを収集する。
type retargetProgressCollector struct {
	eventCounts map[minteractor.RetargetProgressEventType]int
	dropReasons map[string]int
	trackTotal  int
}

// main はVRMAモーションの一括リターゲット・headless再生を実行する。
func main() {
	os.Exit(run())
}

// run は実行設定を解決して一括再生を実行し、終了コードを返す。
func run() int {
	config, err := parseBatchConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "設定解析に失敗しました: %v\n", err)
		return 2
	}
	paths := append([]string(nil), targetMotionPaths...)
	paths = append(paths, flag.Args()...)
	entries := buildPlaybackEntries(config.OutputRoot, paths)
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "再生対象モーションがありません")
		return 2
	}

	results := executeBatchPlayback(config, entries)
	printBatchSummary(results)

	for _, result := range results {
		if result.Status == "failed" {
			return 1
		}
	}
	return 0
}

// parseBatchConfig はコマンドライン引数から実行設定を構築する。
func parseBatchConfig() (batchConfig, error) {
	defaultOutputRoot, err := resolveDefaultOutputRoot()
	if err != nil {
		return batchConfig{}, err
	}
	avatarPath := flag.String("avatar", targetAvatarPath, "再生対象VRMファイルパス")
	outputRoot := flag.String("output-root", defaultOutputRoot, "再生結果の出力ルートディレクトリ")
	seconds := flag.Float64("seconds", 2, "1モーションあたりの再生秒数")
	dryRun := flag.Bool("dry-run", false, "再生せず、入力解決と出力先計画のみ表示する")
	failFast := flag.Bool("fail-fast", false, "失敗時に即時終了する")
	flag.Parse()

	trimmedOutputRoot := strings.TrimSpace(*outputRoot)
	if trimmedOutputRoot == "" {
		return batchConfig{}, errors.New("output-root が空です")
	}
	if *seconds <= 0 {
		return batchConfig{}, fmt.Errorf("seconds は正の値を指定してください: %f", *seconds)
	}
	return batchConfig{
		AvatarPath: normalizeInputPath(*avatarPath),
		OutputRoot: filepath.Clean(trimmedOutputRoot),
		Seconds:    *seconds,
		DryRun:     *dryRun,
		FailFast:   *failFast,
	}, nil
}

// resolveDefaultOutputRoot はスクリプト配置ディレクトリ基準の既定出力先を返す。
func resolveDefaultOutputRoot() (string, error) {
	_, currentFilePath, _, ok := runtime.Caller(0)
	if !ok {
		return "", errors.New("実行ファイル位置を取得できません")
	}
	return filepath.Join(filepath.Dir(currentFilePath), "output"), nil
}

// buildPlaybackEntries は入力パス一覧から再生対象エントリを生成する。
func buildPlaybackEntries(outputRoot string, inputPaths []string) []playbackEntry {
	entries := make([]playbackEntry, 0, len(inputPaths))
	for i, rawPath := range inputPaths {
		motionName := resolveMotionName(rawPath)
		safeName := sanitizePathComponent(motionName)
		entries = append(entries, playbackEntry{
			Index:      i + 1,
			SourcePath: normalizeInputPath(rawPath),
			MotionName: motionName,
			ReportPath: filepath.Join(outputRoot, fmt.Sprintf("%03d_%s.txt", i+1, safeName)),
		})
	}
	return entries
}

// executeBatchPlayback は全モーションを同じアバターへ順にバインドして再生する。
func executeBatchPlayback(config batchConfig, entries []playbackEntry) []playbackResult {
	results := make([]playbackResult, 0, len(entries))
	total := len(entries)
	for _, entry := range entries {
		fmt.Printf("[%d/%d] 再生開始: motion=%s\n", entry.Index, total, entry.MotionName)
		result := playMotionEntry(config, entry)
		results = append(results, result)
		switch result.Status {
		case "succeeded":
			fmt.Printf("[%d/%d] 再生成功: motion=%s report=%s elapsed=%s\n",
				entry.Index, total, entry.MotionName, entry.ReportPath, result.Duration.Round(time.Millisecond))
			fmt.Printf("[%d/%d] リターゲット進捗: %s\n", entry.Index, total, result.RetargetInfo)
		case "dry_run":
			fmt.Printf("[%d/%d] DRY-RUN: motion=%s input=%s report=%s\n",
				entry.Index, total, entry.MotionName, entry.SourcePath, entry.ReportPath)
		case "skipped_missing":
			fmt.Printf("[%d/%d] 入力不足でスキップ: motion=%s input=%s reason=%v\n",
				entry.Index, total, entry.MotionName, entry.SourcePath, result.Err)
		default:
			fmt.Printf("[%d/%d] 再生失敗: motion=%s reason=%v\n", entry.Index, total, entry.MotionName, result.Err)
			if config.FailFast {
				return results
			}
		}
	}
	return results
}

// playMotionEntry は1モーション分のリターゲットと再生を実行する。
func playMotionEntry(config batchConfig, entry playbackEntry) playbackResult {
	result := playbackResult{Entry: entry, Status: "failed"}
	for _, path := range []string{config.AvatarPath, entry.SourcePath} {
		if _, err := os.Stat(path); err != nil {
			result.Status = "skipped_missing"
			result.Err = err
			return result
		}
	}
	if config.DryRun {
		result.Status = "dry_run"
		return result
	}
	if err := os.MkdirAll(filepath.Dir(entry.ReportPath), batchOutputDirMode); err != nil {
		result.Err = fmt.Errorf("出力ディレクトリ作成に失敗しました: %w", err)
		return result
	}

	startedAt := time.Now()
	collector := newRetargetProgressCollector()
	usecase := minteractor.NewMotionPlayerUsecase(minteractor.MotionPlayerUsecaseDeps{
		MotionReader:    vrma.NewVrmaRepository(),
		AvatarReader:    vrm.NewVrmRepository(),
		AvatarFactory:   headless.NewFactory(),
		RetargetOptions: &minteractor.RetargetOptions{ReportDuplicates: true, Reporter: collector},
	})
	avatar, err := usecase.LoadAvatar(nil, config.AvatarPath)
	if err != nil {
		result.Err = fmt.Errorf("LoadAvatarに失敗しました: %w", err)
		return result
	}
	loaded, err := usecase.LoadAndBindMotion(minteractor.LoadMotionRequest{Path: entry.SourcePath})
	if err != nil {
		result.Err = fmt.Errorf("LoadAndBindMotionに失敗しました: status=%s: %w", loaded.Status, err)
		return result
	}

	clock, err := headless.NewFrameClock(batchFPS)
	if err != nil {
		result.Err = err
		return result
	}
	for frame := 0; frame < clock.FrameCount(config.Seconds); frame++ {
		usecase.Tick(clock.Step())
	}
	if err := writePlaybackReport(entry.ReportPath, avatar, loaded); err != nil {
		result.Err = err
		return result
	}

	result.Status = "succeeded"
	result.Duration = time.Since(startedAt)
	result.RetargetInfo = collector.Summary()
	return result
}

// writePlaybackReport は再生後の姿勢と棄却トラックをテキストへ書き出す。
func writePlaybackReport(path string, avatar moutput.IAvatar, loaded *minteractor.LoadMotionResult) error {
	var b strings.Builder
	fmt.Fprintf(&b, "clip=%s status=%s accepted=%d dropped=%d duration=%.3f\n",
		loaded.ClipName, loaded.Status, loaded.Report.Accepted, len(loaded.Report.Dropped), loaded.Motion.Duration)
	for _, dropped := range loaded.Report.Dropped {
		fmt.Fprintf(&b, "dropped %s reason=%s\n", dropped.Name, dropped.Reason)
	}
	for _, warning := range loaded.Report.Warnings {
		fmt.Fprintf(&b, "warning %s track=%s\n", warning.ID, warning.TrackName)
	}
	if headlessAvatar, ok := avatar.(*headless.Avatar); ok {
		pose := headlessAvatar.Pose()
		for _, boneId := range pose.BoneIds() {
			bone, _ := pose.Bone(boneId)
			q := bone.Rotation
			fmt.Fprintf(&b, "pose %s q=[%.5f %.5f %.5f %.5f] t=[%.5f %.5f %.5f]\n",
				boneId, q.V[0], q.V[1], q.V[2], q.W, bone.Translation.X, bone.Translation.Y, bone.Translation.Z)
		}
		if lookAt := headlessAvatar.LookAt(); lookAt != nil {
			fmt.Fprintf(&b, "gaze yaw=%.3f pitch=%.3f\n", lookAt.Yaw(), lookAt.Pitch())
		}
	}
	if err := os.WriteFile(path, []byte(b.String()), batchOutputFileMode); err != nil {
		return fmt.Errorf("再生結果の書き出しに失敗しました: %w", err)
	}
	return nil
}

// printBatchSummary は再生結果の集計を標準出力へ表示する。
func printBatchSummary(results []playbackResult) {
	counts := map[string]int{}
	for _, result := range results {
		counts[result.Status]++
	}
	fmt.Printf(
		"バッチ再生サマリ: total=%d succeeded=%d failed=%d skipped_missing=%d dry_run=%d\n",
		len(results),
		counts["succeeded"],
		counts["failed"],
		counts["skipped_missing"],
		counts["dry_run"],
	)
}

// resolveMotionName は入力パスから拡張子を除いたモーション名を返す。
func resolveMotionName(path string) string {
	base := strings.TrimSpace(filepath.Base(path))
	name := strings.TrimSpace(strings.TrimSuffix(base, filepath.Ext(base)))
	if name == "" {
		return "motion"
	}
	return name
}

// normalizeInputPath は入力パスを実行環境向けに正規化する。
func normalizeInputPath(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return ""
	}
	return filepath.Clean(convertWindowsPathToWsl(trimmed))
}

// convertWindowsPathToWsl は Linux 実行時に Windows パスを WSL パスへ変換する。
func convertWindowsPathToWsl(path string) string {
	if runtime.GOOS != "linux" {
		return path
	}
	if len(path) < 2 || path[1] != ':' {
		return path
	}
	drive := strings.ToLower(path[:1])
	rest := strings.ReplaceAll(path[2:], "\\", "/")
	if rest == "" {
		return filepath.ToSlash(filepath.Join("/mnt", drive))
	}
	if !strings.HasPrefix(rest, "/") {
		rest = "/" + rest
	}
	return filepath.ToSlash(filepath.Join("/mnt", drive) + rest)
}

// sanitizePathComponent は出力ファイル名に使えない文字を置換する。
func sanitizePathComponent(name string) string {
	trimmed := strings.TrimSpace(name)
	replaced := strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
			return '_'
		default:
			if r < 0x20 {
				return '_'
			}
			return r
		}
	}, trimmed)
	replaced = strings.Trim(replaced, " .")
	if replaced == "" {
		return "motion"
	}
	return replaced
}

// newRetargetProgressCollector はリターゲット進捗収集器を生成する。
func newRetargetProgressCollector() *retargetProgressCollector {
	return &retargetProgressCollector{
		eventCounts: map[minteractor.RetargetProgressEventType]int{},
		dropReasons: map[string]int{},
	}
}

// ReportRetargetProgress はリターゲット進捗イベントを収集する。
func (collector *retargetProgressCollector) ReportRetargetProgress(event minteractor.RetargetProgressEvent) {
	if collector == nil {
		return
	}
	collector.eventCounts[event.Type]++
	if event.Type == minteractor.RetargetProgressEventTypeTrackDropped {
		collector.dropReasons[event.Reason]++
	}
	if event.TrackTotal > collector.trackTotal {
		collector.trackTotal = event.TrackTotal
	}
}

// Summary は収集した進捗の要約文字列を返す。
func (collector *retargetProgressCollector) Summary() string {
	if collector == nil || len(collector.eventCounts) == 0 {
		return ""
	}
	reasons := make([]string, 0, len(collector.dropReasons))
	for reason, count := range collector.dropReasons {
		reasons = append(reasons, fmt.Sprintf("%s:%d", reason, count))
	}
	sort.Strings(reasons)
	return fmt.Sprintf(
		"tracks=%d accepted=%d lookAt=%d dropped=%d reasons=%s",
		collector.trackTotal,
		collector.eventCounts[minteractor.RetargetProgressEventTypeTrackAccepted],
		collector.eventCounts[minteractor.RetargetProgressEventTypeLookAtAccepted],
		collector.eventCounts[minteractor.RetargetProgressEventTypeTrackDropped],
		strings.Join(reasons, ","),
	)
}
