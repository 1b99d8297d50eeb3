// ABOUTME: Projection schema definitions
// ABOUTME: Handles SQLite table creation for the in-memory snapshot
package db

const schema = `
CREATE TABLE contacts (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT,
	phone TEXT,
	company TEXT,
	role TEXT,
	custom TEXT,
	created TEXT NOT NULL,
	updated TEXT NOT NULL
);

CREATE TABLE companies (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	domain TEXT,
	industry TEXT,
	size TEXT,
	custom TEXT,
	created TEXT NOT NULL,
	updated TEXT NOT NULL
);

CREATE TABLE deals (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	company TEXT,
	contacts TEXT NOT NULL,
	stage TEXT NOT NULL,
	value REAL,
	currency TEXT,
	probability REAL,
	close_date TEXT,
	custom TEXT,
	created TEXT NOT NULL,
	updated TEXT NOT NULL
);

CREATE TABLE activities (
	id TEXT PRIMARY KEY,
	type TEXT NOT NULL,
	subject TEXT NOT NULL,
	body TEXT,
	contact TEXT,
	deal TEXT,
	company TEXT,
	date TEXT NOT NULL,
	created TEXT NOT NULL,
	updated TEXT NOT NULL
);

CREATE TABLE tasks (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	contact TEXT,
	deal TEXT,
	company TEXT,
	due TEXT,
	done INTEGER NOT NULL,
	created TEXT NOT NULL,
	updated TEXT NOT NULL
);
`
