package stores

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/liut/finai/pkg/models/bot"
)

// LoadReplies loads canned replies from a yaml file, missing fields use defaults.
func LoadReplies(name string) (doc bot.Replies, err error) {
	if len(name) > 0 {
		var yf *os.File
		yf, err = os.Open(name)
		if err != nil {
			logger().Infow("load replies fail", "file", name, "err", err)
			return
		}
		defer yf.Close()
		err = yaml.NewDecoder(yf).Decode(&doc)
		if err != nil {
			logger().Infow("decode replies fail", "err", err)
			return
		}
	}

	doc = doc.Merge()
	return
}
