package driver

const (
	SavePlayersQuery = `
		UNWIND $rows AS row
		MERGE (p:Player {id: row.id})
		SET p.primary_key = row.primary_key,
			p.synthetic = row.id < 0,
			p.exported_at = $exported_at
		RETURN count(p) AS players
	`

	SaveAliasesQuery = `
		UNWIND $rows AS row
		MATCH (p:Player {id: row.id})
		MERGE (a:Alias {name: row.name})
		MERGE (p)-[k:KNOWN_AS]->(a)
		SET k.languages = row.languages,
			k.preferred = row.preferred
		RETURN count(k) AS links
	`

	DeleteStaleAliasLinksQuery = `
		UNWIND $rows AS row
		MATCH (p:Player {id: row.id})-[k:KNOWN_AS]->(a:Alias)
		WHERE NOT a.name IN row.names
		DELETE k
		RETURN count(k) AS removed
	`

	DeleteOrphanAliasesQuery = `
		MATCH (a:Alias)
		WHERE NOT (a)<-[:KNOWN_AS]-()
		DELETE a
		RETURN count(a) AS removed
	`

	GetPlayersByAliasQuery = `
		MATCH (p:Player)-[:KNOWN_AS]->(a:Alias {name: $name})
		RETURN p.id AS id, p.primary_key AS primary_key
		ORDER BY p.id
	`

	GetSharedAliasesQuery = `
		MATCH (p:Player)-[:KNOWN_AS]->(a:Alias)<-[:KNOWN_AS]-(q:Player)
		WHERE p.id < q.id
		RETURN a.name AS name, p.id AS id1, q.id AS id2
		ORDER BY id1, id2, name
	`
)
