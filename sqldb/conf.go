package sqldb

import (
	"encoding/json"
	"os"
	"time"
)

// Conf holds the connection parameters for one database. Embedded
// engines only need Path; networked engines use Host/Port/User/PW/DB.
type Conf struct {
	Type    string `json:"type"` // sqlite, mysql, pgsql
	Path    string `json:"path"` // database file path (embedded engines)
	Host    string `json:"host"`
	Port    int    `json:"port"`
	User    string `json:"user"`
	PW      string `json:"pw"`
	DB      string `json:"db"`
	Charset string `json:"charset"`
	TZ      string `json:"tz"`  // Connection Timezone
	DSN     string `json:"dsn"` // To Overwrite Default DSN

	// TimeoutSec is the connection/busy timeout in seconds. 0 = driver default.
	TimeoutSec float64 `json:"timeout_sec"`
	// CrossThread permits concurrent use of the handle. When false the
	// client keeps a single underlying connection and callers must
	// serialize access themselves.
	CrossThread bool `json:"cross_thread"`
}

func (c *Conf) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec * float64(time.Second))
}

// LoadConfs reads a JSON file mapping database names to confs,
// e.g. config/.sql-databases.json.
func LoadConfs(path string) (map[string]*Conf, error) {
	confBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	confs := make(map[string]*Conf)
	if err = json.Unmarshal(confBytes, &confs); err != nil {
		return nil, err
	}
	return confs, nil
}
