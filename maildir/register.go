package maildir

import (
	"fmt"
	"time"

	"github.com/infodancer/mailclean"
	"github.com/infodancer/mailclean/errors"
)

func init() {
	mailclean.Register("maildir", func(config mailclean.StoreConfig) (mailclean.MailStore, error) {
		if config.BasePath == "" {
			return nil, errors.ErrStoreConfigInvalid
		}
		// prefix is prepended to folder directory names (default ".")
		prefix, ok := config.Options["prefix"]
		if !ok {
			prefix = mailclean.DefaultPrefix
		}
		// separator replaces "/" in hierarchical folder names (default ".")
		separator, ok := config.Options["separator"]
		if !ok {
			separator = mailclean.DefaultSeparator
		}
		store := NewStore(config.BasePath, prefix, separator)
		// retry_delay is the pause between delivery attempts (default 2s)
		if v, ok := config.Options["retry_delay"]; ok {
			d, err := time.ParseDuration(v)
			if err != nil || d < 0 {
				return nil, fmt.Errorf("%w: retry_delay %q", errors.ErrStoreConfigInvalid, v)
			}
			store.retryDelay = d
		}
		return store, nil
	})
}
