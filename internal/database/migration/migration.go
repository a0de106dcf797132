package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_stores",
		SQL: `CREATE TABLE IF NOT EXISTS stores (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  city       TEXT        NOT NULL,
  region     TEXT        NOT NULL CHECK (region IN ('PR', 'SP')),
  address    TEXT        NOT NULL,
  phone      TEXT        NOT NULL DEFAULT '',
  whatsapp   TEXT        NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_stores_region_city",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_stores_region_city ON stores (region, city);`,
	},
	{
		Name: "create_table_exports",
		SQL: `CREATE TABLE IF NOT EXISTS exports (
  id           UUID        PRIMARY KEY,
  region       TEXT        NOT NULL CHECK (region IN ('PR', 'SP')),
  filename     TEXT        NOT NULL,
  storage_path TEXT        NOT NULL UNIQUE,
  size         BIGINT      NOT NULL CHECK (size >= 0),
  store_count  INTEGER     NOT NULL CHECK (store_count >= 0),
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_exports_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_exports_created_at ON exports (created_at);`,
	},
	{
		// Seed the network as it stood at launch. Stores whose landline is
		// the shared 0800 number are stored with an empty phone; the flyer
		// renderer substitutes the national number at render time.
		Name: "seed_stores",
		SQL: `INSERT INTO stores (city, region, address, phone, whatsapp) VALUES
  ('Apucarana', 'PR', 'Avenida gov. roberto da silveira, 934 - barra funda', '(43) 3427-9356', '(43) 99810-0214'),
  ('Arapongas', 'PR', 'Avenida maracanã, 2814 - vila bernardes', '(43) 3252-5472', '(43) 99810-0108'),
  ('Arapongas 2', 'PR', 'Rua soldado, 02 - jardim aeroporto', '(43) 3252-6096', '(43) 99810-0792'),
  ('Bandeirantes', 'PR', 'Rua jorge m. fontes, 11 - vila pompéia', '', '(43) 99154-1091'),
  ('Cambará', 'PR', 'Rua benjamim constant, 1298', '(43) 3532-1515', '(43) 99810-0302'),
  ('Cambé', 'PR', 'Rua belo horizonte, 21 - centro', '(43) 3251-9281', '(43) 99129-7541'),
  ('Cornélio Procópio', 'PR', 'Rua esmeralda, 13 - jardim pérola', '', '(43) 99150-8919'),
  ('Curitiba', 'PR', 'Rua des. cid campêlo 3656 - cidade industrial', '(41) 3248-1390', '(41) 99228-1351'),
  ('Curitiba 2', 'PR', 'Rua primeiro de maio, 1481 xaxim', '', '(41) 99504-0125'),
  ('Curitiba 3', 'PR', 'Rua ana sofía ribeiro, 173 - osternack', '', '(41) 99730-0024'),
  ('Guarapuava 1', 'PR', 'Rua xv de novembro, 6293 - morro alto', '(42) 3035-1434', '(42) 99143-2103'),
  ('Guarapuava 2', 'PR', 'Avenida manoel ribas, 4869 - bairro conradinho', '(42) 3629-2013', '(42) 99117-8535'),
  ('Ibiporã', 'PR', 'Av. pref. mario de menezes, 1344', '', '(43) 99818-0579'),
  ('Jacarezinho', 'PR', 'Rua jose pavan, 373 vila são pedro', '', '(43) 99640-0033'),
  ('Jandaia', 'PR', 'Avenida getúlio vargas, 492 - centro', '(43) 3432-3942', '(43) 99810-0182'),
  ('Londrina', 'PR', 'Avenida brasília, 5120 - parque industrias leves', '(43) 3321-6398', '(43) 99810-0791'),
  ('Londrina 2', 'PR', 'Avenida rio branco, 630 - jardim agari', '(43) 3029-7793', '(43) 99182-7211'),
  ('Londrina 3', 'PR', 'Rod. celso garcia cid, 50 - jardim sabara, londrina - pr, 86185-520', '(43) 99907-0030', '(43) 99907-0030'),
  ('Ortigueira', 'PR', 'Av. paraná/rodovia, 1246 - centro', '(42) 9 9875-0269', '(42) 9 9875-0269'),
  ('Pinhais', 'PR', 'Rodovia deputado joão leopoldo jacomel, 12351 - maria antonieta', '', '(41) 99970-0124'),
  ('Pitanga', 'PR', 'Rua pref. diogo portugal, 431 - bairro pitanguinha', '(42) 3646-3052', '(42) 99157-5321'),
  ('Ponta Grossa', 'PR', 'Rua dom pedro ii, 1245 - bairro nova rússia', '(42) 3236-3470', '(42) 99163-4152'),
  ('Rolandia', 'PR', 'Avenida presidente vargas, 3137-a - centro', '(43) 3256-1020', '(43) 99126-1863'),
  ('Santo Antônio', 'PR', 'Rua amazonas, 11 jd. são pedro', '', '(43) 99924-0607'),
  ('Maringá 1', 'PR', 'Av. morangueira, 527 - zona 7, maringá - pr, 87030-300', '(44) 3030-1131', '(44) 99985-0620'),
  ('Maringá 2', 'PR', 'Av. 19 de dezembro, 563 - zona 06, maringá - pr, 87080-185', '(44) 3224-3366', '(44) 99127-3505'),
  ('Maringá 3', 'PR', 'Av. tuiuti, 1176 - vila morangueira, maringá - pr, 87043-720', '', '(44) 99820-2777'),
  ('Telemaco', 'PR', 'Av. mar. floriano peixoto, 1118 - alto das oliveiras', '(42) 3273-2367', '(42) 99133-6652'),
  ('Campinas 1', 'SP', 'Avenida dr. alberto sarmento, 546 - bonfim', '(19) 3365-5913', '(19) 99783-0702'),
  ('Campinas 2', 'SP', 'Avenida dr. alberto sarmento, 265 - bonfim', '(19) 2121-2418', '(19)98158-7855'),
  ('Hortolândia', 'SP', 'Av. thereza ana cecon breda, 395 - são pedro', '', '(19) 98360-0294'),
  ('Indaiatuba', 'SP', 'Avenida conceição, 1600 - vila maria helena', '(19) 3329-1004', '(19) 99708-0905'),
  ('Itapetininga', 'SP', 'Rua salvador de oliveira leme, 618 - jardim itália', '(15) 3527-5736', '(15) 99602-4243'),
  ('Porto Feliz', 'SP', 'Rodovia vicente palma km 5,7', '(15) 3500-9492', '(15) 3500-9492'),
  ('Itu', 'SP', 'Av. caetano ruggieri, 2537 - pq. ns. sra. da candelária', '(11) 2715-0199', '(11) 99913-3699'),
  ('Jundiaí', 'SP', 'Av. quatorze de dezembro, 2260 vila rami', '', '(11) 97768-0404'),
  ('Ourinhos', 'SP', 'Av. domingos perino, 793 vila perino', '', '(14) 99889-0782'),
  ('Sorocaba 1', 'SP', 'Av. cor. nogueira padilha, 1750 - vila hortência', '(15) 3227-7108', '(15) 99692-3320'),
  ('Sorocaba 2', 'SP', 'Avenida ipanema, 1235 - vila angelica', '(15) 3037-4466', '(15) 99750-2075'),
  ('Sorocaba 3', 'SP', 'Avenida ipanema, 3201 - jardim planalto', '(15) 3411-6000', '(15) 99758-5612'),
  ('Tatui', 'SP', 'Av. vice prefeito pompeu reali, 1420 - são cristovão', '(15) 3259-3060', '(15) 99849-2470'),
  ('Votorantim', 'SP', 'Av. 31 de março, 913 centro', '', '(15) 98104-0041'),
  ('Piracicaba', 'SP', 'Rua amando salles, 1481 - bairro alto', '(19) 3375-2984', '(19) 97157-6491');`,
	},
}

// EnsureMigrated checks if the 'stores' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.stores') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		logJSON(loc, map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range steps {
		stepStart := time.Now()
		_, err := db.ExecContext(ctx, step.SQL)
		if err != nil {
			logJSON(loc, map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logJSON(loc, map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
