package service_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jpl-au/glossd/internal/glossary"
	"github.com/jpl-au/glossd/internal/repo"
	"github.com/jpl-au/glossd/internal/search"
	"github.com/jpl-au/glossd/internal/service"
	"github.com/jpl-au/glossd/internal/store"
)

// tempService creates a temporary glossd database for examples.
func tempService() (service.Service, func()) {
	dir, err := os.MkdirTemp("", "glossd-example-*")
	if err != nil {
		panic(err)
	}
	if err := glossary.Init(false, "", false, dir); err != nil {
		panic(err)
	}
	svc, err := glossary.New(glossary.Options{Dir: filepath.Join(dir, repo.Dir)})
	if err != nil {
		panic(err)
	}
	cleanup := func() {
		svc.Close()
		os.RemoveAll(dir)
	}
	return svc, cleanup
}

// seed adds a small collection to svc.
func seed(svc service.Service) int64 {
	ctx := context.Background()
	id, err := svc.AddCollection(ctx, 1, "Biology")
	if err != nil {
		panic(err)
	}
	for _, term := range []string{"Cat", "Catalyst", "Concatenation"} {
		_, err := svc.AddEntry(ctx, store.Entry{
			CollectionID: id,
			Term:         term,
			Definition:   "About " + term + ".",
			Format:       store.FormatPlain,
			Approved:     true,
		}, nil)
		if err != nil {
			panic(err)
		}
	}
	return id
}

func Example_substringSearch() {
	svc, cleanup := tempService()
	defer cleanup()
	seed(svc)

	res, err := svc.Search(context.Background(), search.Request{Query: "cat"})
	if err != nil {
		panic(err)
	}
	fmt.Println(res.Total)
	for _, it := range res.Items {
		fmt.Println(it.TermHTML)
	}
	// Output:
	// 3
	// <mark>Cat</mark>
	// <mark>Cat</mark>alyst
	// Con<mark>cat</mark>enation
}

func Example_wholeWordSearch() {
	svc, cleanup := tempService()
	defer cleanup()
	seed(svc)

	res, err := svc.Search(context.Background(), search.Request{Query: "cat", WholeWord: true})
	if err != nil {
		panic(err)
	}
	for _, it := range res.Items {
		fmt.Println(it.Term)
	}
	// Output:
	// Cat
}

func Example_emptyQuery() {
	svc, cleanup := tempService()
	defer cleanup()

	res, err := svc.Search(context.Background(), search.Request{Query: "   "})
	if err != nil {
		panic(err)
	}
	fmt.Println(res.Help, res.Total)
	// Output:
	// true 0
}
