package gacha

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	mrand "math/rand/v2"
)

// RandomSource 抽象了抽取解算使用的随机数来源。
// 生产路径使用密码学随机数，测试注入种子化的确定性来源。
type RandomSource interface {
	// Float64 返回[0,1)内的随机数
	Float64() float64
}

// cryptoSource 基于 crypto/rand 的默认随机数来源
type cryptoSource struct{}

func (cryptoSource) Float64() float64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		panic(fmt.Sprintf("无法读取系统随机数: %v", err))
	}
	// 取53位尾数构造[0,1)内的浮点数
	return float64(binary.BigEndian.Uint64(buf[:])>>11) / (1 << 53)
}

// DefaultRandomSource 返回生产环境使用的随机数来源
func DefaultRandomSource() RandomSource {
	return cryptoSource{}
}

// seededSource 是种子化的确定性随机数来源
type seededSource struct {
	rng *mrand.Rand
}

func (s *seededSource) Float64() float64 {
	return s.rng.Float64()
}

// NewSeededSource 返回按种子确定的随机数来源，只用于测试
func NewSeededSource(seed uint64) RandomSource {
	return &seededSource{rng: mrand.New(mrand.NewPCG(seed, seed))}
}
