package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS inflation_rates (
    country_code         TEXT NOT NULL,
    country_name         TEXT NOT NULL,
    product_code         TEXT NOT NULL,
    product_name         TEXT NOT NULL,
    date                 TEXT NOT NULL,
    year                 INTEGER NOT NULL,
    month                INTEGER NOT NULL,
    yoy                  REAL,
    mom                  REAL,
    price_index          REAL,
    hierarchy_level      INTEGER,
    parent_code          TEXT,
    PRIMARY KEY (country_code, product_code, date)
);

CREATE TABLE IF NOT EXISTS economic_indicators (
    country_code         TEXT NOT NULL,
    country_name         TEXT NOT NULL,
    year                 INTEGER NOT NULL,
    gdp_per_capita       REAL,
    cpi                  REAL,
    inflation_rate       REAL,
    gdp_growth           REAL,
    PRIMARY KEY (country_code, year)
);

CREATE TABLE IF NOT EXISTS product_prices (
    record_id            INTEGER PRIMARY KEY,
    product_id           INTEGER NOT NULL,
    product_name         TEXT NOT NULL,
    brand                TEXT,
    country_code         TEXT NOT NULL,
    country_name         TEXT NOT NULL,
    food_category        TEXT NOT NULL,
    price                TEXT NOT NULL,
    currency             TEXT NOT NULL,
    price_per_unit       TEXT NOT NULL,
    unit                 TEXT NOT NULL,
    date                 TEXT NOT NULL,
    year                 INTEGER NOT NULL,
    month                INTEGER NOT NULL,
    nutrition_grade      TEXT,
    category_inflation   REAL,
    overall_inflation    REAL,
    gdp_per_capita       REAL,
    gdp_growth           REAL,
    price_deviation      REAL
);

CREATE TABLE IF NOT EXISTS snapshot_meta (
    dataset              TEXT PRIMARY KEY,
    source               TEXT NOT NULL,
    load_id              TEXT NOT NULL,
    fetched_at           TEXT NOT NULL,
    row_count            INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_inflation_product ON inflation_rates(product_code);
CREATE INDEX IF NOT EXISTS idx_inflation_date ON inflation_rates(date);
CREATE INDEX IF NOT EXISTS idx_prices_category ON product_prices(food_category);
`
