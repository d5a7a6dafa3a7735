// Package importer loads catalog sources into a catalog.
//
// # Manager
//
// The Manager coordinates the whole import:
//
//  1. Classify each source (manifest file, URL, audio directory, snapshot)
//  2. Read the sources concurrently
//  3. Apply the results to the catalog in source order
//
// # Basic Usage
//
//	manager := importer.NewManager(settings, func(event importer.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	c := catalog.New()
//	err := manager.Load(ctx, c, []string{
//	    "albums.yaml",
//	    "/home/user/Music",
//	    "https://example.com/catalogs/",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Concurrency
//
// At most settings.MaxConcurrentSources sources are read in parallel, and
// each directory scan reads at most settings.MaxConcurrentFiles files at
// once. The catalog itself is only touched from the calling goroutine.
//
// # Retry Logic
//
// Failed HTTP fetches are retried with exponential backoff, configurable via
// settings.FetchMaxRetries, settings.RetryCooldown and settings.RetryExponent.
package importer
