package stats

import (
	"container/heap"
	"fmt"
	"strconv"
	"time"

	"github.com/SlpAus/card-gacha-backend/internal/gacha"
	"github.com/SlpAus/card-gacha-backend/internal/platform/database"
	"github.com/SlpAus/card-gacha-backend/internal/platform/metadata"
	"github.com/SlpAus/card-gacha-backend/pkg/lifecycle"
)

// recordIDHeap 是记录ID的最小堆，保证乱序到达的记录按ID顺序被消费
type recordIDHeap []uint

func (h recordIDHeap) Len() int            { return len(h) }
func (h recordIDHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h recordIDHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *recordIDHeap) Push(x interface{}) { *h = append(*h, x.(uint)) }
func (h *recordIDHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// processorQueueSize 是待处理记录通知通道的容量
const processorQueueSize = 1024

// patrolInterval 是巡查遗漏记录的周期
const patrolInterval = 30 * time.Second

var recordQueue = make(chan uint, processorQueueSize)

// NotifyRecordCommitted 把一条已提交的历史记录交给统计处理器。
// 通道满时直接丢弃，巡查协程之后会补上。
func NotifyRecordCommitted(recordID uint) {
	select {
	case recordQueue <- recordID:
	default:
	}
}

// StartProcessor 启动统计缓存的单写协程与巡查协程
func StartProcessor(manager *lifecycle.Manager) error {
	processorHandle, err := manager.NewServiceHandle("统计处理器")
	if err != nil {
		return err
	}
	go runProcessor(processorHandle)

	patrolHandle, err := manager.NewServiceHandle("统计巡查")
	if err != nil {
		return err
	}
	go runPatroller(patrolHandle)
	return nil
}

// runProcessor 是统计缓存的唯一写入者。
// 记录ID先进最小堆，只有紧跟检查点的记录才会被应用，
// 空洞留给巡查协程补齐，保证每条记录恰好被应用一次。
func runProcessor(handle *lifecycle.Handle) {
	defer handle.Close()

	pending := &recordIDHeap{}
	heap.Init(pending)

	for {
		select {
		case <-handle.Done():
			fmt.Println("统计处理器已停止。")
			return
		case id := <-recordQueue:
			heap.Push(pending, id)
			drainPending(pending)
		}
	}
}

// drainPending 应用堆中所有已经接续上检查点的记录
func drainPending(pending *recordIDHeap) {
	if !database.IsRedisHealthy() {
		// Redis不可用时丢弃积压，恢复后由全量重建兜底
		*pending = (*pending)[:0]
		return
	}

	checkpoint := loadCheckpoint()
	for pending.Len() > 0 {
		next := (*pending)[0]
		if next <= checkpoint {
			// 已应用过的记录直接丢弃
			heap.Pop(pending)
			continue
		}
		if next != checkpoint+1 {
			return
		}
		heap.Pop(pending)
		if err := applyRecord(next); err != nil {
			fmt.Printf("警告: 应用记录 %d 失败: %v\n", next, err)
			return
		}
		checkpoint = next
		saveCheckpoint(checkpoint)
	}
}

// runPatroller 周期性扫描检查点之后的遗漏记录并重新入队
func runPatroller(handle *lifecycle.Handle) {
	defer handle.Close()

	for {
		if err := handle.Sleep(patrolInterval); err != nil {
			fmt.Println("统计巡查已停止。")
			return
		}
		if !database.IsRedisHealthy() {
			continue
		}

		checkpoint := loadCheckpoint()
		var ids []uint
		err := database.DB.Model(&gacha.Record{}).Where("id > ?", checkpoint).
			Order("id asc").Limit(processorQueueSize / 2).Pluck("id", &ids).Error
		if err != nil {
			fmt.Printf("警告: 巡查抽卡记录失败: %v\n", err)
			continue
		}
		for _, id := range ids {
			NotifyRecordCommitted(id)
		}
	}
}

// loadCheckpoint 读取Redis中最后一条已应用记录的ID
func loadCheckpoint() uint {
	val, err := database.RDB.Get(database.Ctx, metadata.RedisLastProcessedRecordIDKey).Result()
	if err != nil {
		return 0
	}
	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}

func saveCheckpoint(id uint) {
	if err := database.RDB.Set(database.Ctx, metadata.RedisLastProcessedRecordIDKey, strconv.FormatUint(uint64(id), 10), 0).Err(); err != nil {
		fmt.Printf("警告: 无法写入统计检查点: %v\n", err)
	}
}

// applyRecord 把一条历史记录的增量应用到Redis统计缓存
func applyRecord(recordID uint) error {
	var r gacha.Record
	if err := database.DB.First(&r, recordID).Error; err != nil {
		return fmt.Errorf("加载记录失败: %w", err)
	}

	pipe := database.RDB.Pipeline()
	pipe.IncrBy(database.Ctx, metadata.RedisTotalGachasKey, int64(r.Count))
	pipe.ZIncrBy(database.Ctx, PackPopularityKey, float64(r.Count), r.PackID)
	pipe.Del(database.Ctx, UserStatsKeyPrefix+r.UserUUID)
	pipe.Del(database.Ctx, GlobalStatsKey)
	if _, err := pipe.Exec(database.Ctx); err != nil {
		return fmt.Errorf("更新统计缓存失败: %w", err)
	}
	return nil
}
