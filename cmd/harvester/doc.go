/*
Command harvester downloads and validates the ChemTel safety-document
catalog.

One invocation performs a full pass:
  - Renders the listing page (headless Chrome) and extracts document links
  - Derives a canonical lowercase filename for each link
  - Downloads documents that are not already stored; presence in the store
    is the only download ledger
  - Validates every stored document with a bounded worker pool, deleting
    anything that fails to parse or has no pages
  - Renames surviving uppercase filenames to their lowercase form, never
    overwriting

Architecture

	├── cmd/harvester/          # Entry point and wiring
	├── internal/
	│   ├── config/            # Environment + .env configuration
	│   ├── observability/     # Logger and metrics ports, providers, mocks
	│   ├── storage/           # Store port with fs, memory and s3 adapters
	│   ├── listing/           # Rendered-markup source with cache fallback
	│   ├── extract/           # Link extraction from listing markup
	│   ├── naming/            # Canonical filename derivation and renames
	│   ├── download/          # Single-attempt acquisition into the store
	│   ├── inventory/         # Stored-document discovery and ordering
	│   ├── validate/          # Structural validation, destructive on failure
	│   └── pipeline/          # Run orchestration and reporting

Configuration

All configuration comes from the environment, optionally layered through
.env, .env.<environment> and .env.local files. The notable variables:

	LISTING_URL          page referencing the documents
	STORAGE_ADAPTER      filesystem (default), s3 or memory
	STORAGE_ROOT         directory or bucket receiving the documents
	MAX_WORKERS          validation pool size (default 100)
	METRICS_ENABLED      expose Prometheus metrics on METRICS_ADDR

Failures are isolated per document: a bad link, a refused connection or a
corrupt file is logged and counted, and the run continues. The process exits
non-zero only when the run cannot proceed at all.
*/
package main
