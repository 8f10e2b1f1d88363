package theworld

import (
	"time"

	"go.uber.org/zap"
)

// frameStats holds per-frame phase timings. Only populated in debug mode.
type frameStats struct {
	updateTime    time.Duration
	physicsTime   time.Duration
	coroutineTime time.Duration
	matrixTime    time.Duration
	renderTime    time.Duration
	renderObjects int
	coroutines    int
}

func (s frameStats) total() time.Duration {
	return s.updateTime + s.physicsTime + s.coroutineTime + s.matrixTime + s.renderTime
}

// debugLog writes the frame's phase timings at debug level.
func (g *Game) debugLog(stats frameStats) {
	if !g.debug {
		return
	}
	g.logger.Debug("frame",
		zap.Uint64("frame", g.time.frameCount),
		zap.Duration("update", stats.updateTime),
		zap.Duration("physics", stats.physicsTime),
		zap.Duration("coroutines", stats.coroutineTime),
		zap.Duration("matrices", stats.matrixTime),
		zap.Duration("render", stats.renderTime),
		zap.Duration("total", stats.total()),
		zap.Int("render_objects", stats.renderObjects),
		zap.Int("live_coroutines", stats.coroutines))
}

// debugMaxTreeDepth is the transform depth above which a warning is logged.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(g *Game, t *Transform) {
	depth := 0
	for p := t; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		g.logger.Warn("tree depth exceeds threshold",
			zap.String("object", t.gameObject.name),
			zap.Int("depth", depth),
			zap.Int("threshold", debugMaxTreeDepth))
	}
}

// debugMaxChildCount is the child count above which a warning is logged.
const debugMaxChildCount = 1000

func debugCheckChildCount(g *Game, t *Transform) {
	if len(t.children) > debugMaxChildCount {
		g.logger.Warn("child count exceeds threshold",
			zap.String("object", t.gameObject.name),
			zap.Int("children", len(t.children)),
			zap.Int("threshold", debugMaxChildCount))
	}
}
