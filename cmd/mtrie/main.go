// Command mtrie is a small inspector CLI around the trie package, the
// "CLI" collaborator spec.md §1 treats as external to the core. It keeps
// one trie in memory per invocation, seeded from (and flushed back to) a
// flat key-value dump file via internal/store — the trie's graph is never
// itself persisted, only the flat export.
package main

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"

	fuzz "github.com/google/gofuzz"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/jaiminpan/mtrie/internal/api"
	"github.com/jaiminpan/mtrie/internal/bench"
	"github.com/jaiminpan/mtrie/internal/config"
	"github.com/jaiminpan/mtrie/internal/store"
	"github.com/jaiminpan/mtrie/pkg/log"
	"github.com/jaiminpan/mtrie/trie"
)

var cfg config.Config

func main() {
	app := cli.NewApp()
	app.Name = "mtrie"
	app.Usage = "inspect and serve a Merkle Patricia Trie"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "config", Usage: "path to a YAML config file"},
	}
	app.Before = loadConfig

	app.Commands = []cli.Command{
		{Name: "insert", Usage: "insert <key> <value>", Action: cmdInsert},
		{Name: "get", Usage: "get <key>", Action: cmdGet},
		{Name: "remove", Usage: "remove <key>", Action: cmdRemove},
		{Name: "digest", Usage: "print the root digest of the dump", Action: cmdDigest},
		{
			Name:  "seed",
			Usage: "insert N pseudorandom key/value pairs",
			Flags: []cli.Flag{cli.IntFlag{Name: "count", Value: 100}},
			Action: cmdSeed,
		},
		{
			Name:  "bench",
			Usage: "run the benchmarking harness at the given sizes",
			Flags: []cli.Flag{cli.StringFlag{Name: "sizes", Value: "100,1000,10000"}},
			Action: cmdBench,
		},
		{
			Name:  "serve",
			Usage: "serve the dump over HTTP",
			Flags: []cli.Flag{cli.StringFlag{Name: "addr"}},
			Action: cmdServe,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "mtrie:", err)
		os.Exit(1)
	}
}

func loadConfig(c *cli.Context) error {
	cfg = config.Default()
	if path := c.GlobalString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	return nil
}

func hasher() trie.Hasher {
	if cfg.Hasher == "blake2b" {
		return trie.BLAKE2bHasher{}
	}
	return trie.SHA256Hasher{}
}

func openDump() (*store.FileDB, error) {
	return store.OpenFileDB(cfg.DumpPath)
}

func loadTrie(db *store.FileDB) (*trie.Trie[[]byte], error) {
	return store.Load[[]byte](db, hasher(), trie.BytesEncoder, func(b []byte) ([]byte, error) { return b, nil })
}

func dumpTrie(tr *trie.Trie[[]byte], db *store.FileDB, keys [][]byte) error {
	if err := store.Dump(tr, keys, trie.BytesEncoder, db); err != nil {
		return err
	}
	return db.Flush()
}

func cmdInsert(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.NewExitError("usage: mtrie insert <key> <value>", 1)
	}
	db, err := openDump()
	if err != nil {
		return err
	}
	tr, err := loadTrie(db)
	if err != nil {
		return err
	}
	key, value := []byte(c.Args().Get(0)), []byte(c.Args().Get(1))
	if err := tr.Insert(key, value); err != nil {
		return err
	}
	if err := dumpTrie(tr, db, append(db.Keys(), key)); err != nil {
		return err
	}
	fmt.Println("ok, root digest", digestHex(tr))
	return nil
}

func cmdGet(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.NewExitError("usage: mtrie get <key>", 1)
	}
	db, err := openDump()
	if err != nil {
		return err
	}
	tr, err := loadTrie(db)
	if err != nil {
		return err
	}
	value, ok := tr.Get([]byte(c.Args().Get(0)))
	if !ok {
		return cli.NewExitError("key not found", 1)
	}
	fmt.Println(string(*value))
	return nil
}

func cmdRemove(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.NewExitError("usage: mtrie remove <key>", 1)
	}
	db, err := openDump()
	if err != nil {
		return err
	}
	tr, err := loadTrie(db)
	if err != nil {
		return err
	}
	key := []byte(c.Args().Get(0))
	if _, ok := tr.Remove(key); !ok {
		return cli.NewExitError("key not found", 1)
	}
	if err := db.Delete(key); err != nil {
		return err
	}
	if err := db.Flush(); err != nil {
		return err
	}
	fmt.Println("ok, root digest", digestHex(tr))
	return nil
}

func cmdDigest(c *cli.Context) error {
	db, err := openDump()
	if err != nil {
		return err
	}
	tr, err := loadTrie(db)
	if err != nil {
		return err
	}
	fmt.Println(digestHex(tr))
	return nil
}

func cmdSeed(c *cli.Context) error {
	count := c.Int("count")
	db, err := openDump()
	if err != nil {
		return err
	}
	tr, err := loadTrie(db)
	if err != nil {
		return err
	}

	f := fuzz.New().NilChance(0)
	keys := db.Keys()
	for i := 0; i < count; i++ {
		var key [16]byte
		var value [16]byte
		f.Fuzz(&key)
		f.Fuzz(&value)
		if err := tr.Insert(key[:], value[:]); err != nil {
			continue
		}
		keys = append(keys, key[:])
	}
	if err := dumpTrie(tr, db, keys); err != nil {
		return err
	}
	fmt.Println("seeded", count, "entries, root digest", digestHex(tr))
	return nil
}

func cmdBench(c *cli.Context) error {
	for _, sizeStr := range strings.Split(c.String("sizes"), ",") {
		size, err := strconv.Atoi(strings.TrimSpace(sizeStr))
		if err != nil {
			return cli.NewExitError("bad size "+sizeStr, 1)
		}
		for _, s := range bench.Run(size) {
			fmt.Println(s.Summarize())
		}
	}
	return nil
}

func cmdServe(c *cli.Context) error {
	addr := c.String("addr")
	if addr == "" {
		addr = cfg.ListenAddr
	}
	db, err := openDump()
	if err != nil {
		return err
	}
	tr, err := loadTrie(db)
	if err != nil {
		return err
	}

	logger := log.New(log.LevelFromString(cfg.LogLevel))
	logger.Info("starting server", slog.String("addr", addr))
	srv := api.New(tr, logger)
	return http.ListenAndServe(addr, srv.Handler())
}

func digestHex(tr *trie.Trie[[]byte]) string {
	d := tr.RootDigest()
	return hex.EncodeToString(d[:])
}
