package pipeline

import (
	"os"
	"testing"

	"github.com/wb-go/wbf/zlog"
)

func TestMain(m *testing.M) {
	zlog.Init()
	os.Exit(m.Run())
}
