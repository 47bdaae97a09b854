package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Analyses table: one row per analysis run
CREATE TABLE IF NOT EXISTS analyses (
    analysis_id TEXT PRIMARY KEY,
    created_at TIMESTAMP NOT NULL,
    sector TEXT,
    buyer TEXT,
    email TEXT,
    postal_address TEXT,
    deadline TIMESTAMP,
    deadline_time_known BOOLEAN DEFAULT 0,
    language TEXT,
    file_names TEXT,              -- JSON array of uploaded file names
    warnings TEXT,                -- JSON array
    top_keywords TEXT             -- JSON object: {"word": count, ...}
);

CREATE INDEX IF NOT EXISTS idx_analyses_created ON analyses(created_at);
CREATE INDEX IF NOT EXISTS idx_analyses_sector ON analyses(sector);

-- Required documents detected by a run, in score order
CREATE TABLE IF NOT EXISTS required_documents (
    document_id INTEGER PRIMARY KEY AUTOINCREMENT,
    analysis_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    key TEXT NOT NULL,
    label TEXT NOT NULL,
    category TEXT,
    score INTEGER NOT NULL,
    source_section TEXT,
    summary TEXT,
    keywords TEXT,                -- JSON array
    FOREIGN KEY (analysis_id) REFERENCES analyses(analysis_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_documents_analysis ON required_documents(analysis_id);

-- URLs extracted by a run, in first-encounter order
CREATE TABLE IF NOT EXISTS urls (
    url_id INTEGER PRIMARY KEY AUTOINCREMENT,
    analysis_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    url TEXT NOT NULL,
    FOREIGN KEY (analysis_id) REFERENCES analyses(analysis_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_urls_analysis ON urls(analysis_id);
`
