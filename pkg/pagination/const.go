package pagination

// PageDefaultSize is the default page size if not specified
const PageDefaultSize = 75

// PageMaxSize is the maximum allowed page size
const PageMaxSize = 1_000

// MaxResultsDefault caps how deep a capped window may reach
const MaxResultsDefault = 1_000
