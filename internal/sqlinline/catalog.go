package sqlinline

const QEnsureCatalogTable = `--sql 2111e2d7-f486-40a3-b8d1-9a8d81f5b30c
create table if not exists catalog_entries (
  key        text primary key,
  value      bytea not null,
  updated_at timestamptz not null default now()
);
`

const QSelectCatalogEntry = `--sql 3edf47eb-d9ae-4c3f-8809-35ff7d06d4ea
select value
from catalog_entries
where key = $1::text
limit 1;
`

const QUpsertCatalogEntry = `--sql fac9f28a-d1c5-4b78-9676-9ec4ea1387c4
insert into catalog_entries(key, value, updated_at)
values ($1::text, $2::bytea, now())
on conflict (key) do update
set value = excluded.value,
    updated_at = now();
`

const QDeleteCatalogEntry = `--sql 9df3c614-37ca-4319-91c5-730e03a1e9aa
delete from catalog_entries
where key = $1::text;
`
