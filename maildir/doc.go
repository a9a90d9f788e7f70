// Package maildir provides the Maildir implementation of mailclean's
// folder store and delivery.
//
// A folder is a directory with the usual three areas:
//
//	basePath/             # top-level inbox ("INBOX")
//	├── new/              # delivered, not yet seen by a client
//	├── cur/              # seen by a client; filenames carry ":2,<flags>"
//	├── tmp/              # staging area for deliveries in progress
//	└── .Archive.2024/    # folder "Archive/2024" with prefix "." and separator "."
//	    ├── new/
//	    ├── cur/
//	    └── tmp/
//
// Messages are moved between folders by hard-linking through tmp/, new/
// and cur/ of the destination, so a message is visible in at least one
// area at every instant even if the process dies. The package registers
// itself with the mailclean registry under the name "maildir":
//
//	import _ "github.com/infodancer/mailclean/maildir"
package maildir
