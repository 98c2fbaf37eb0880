package service

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"astromatch/internal/domain"
)

// QueryFingerprint produce el hash estable que identifica un query para el
// cache. Escribe el perfil normalizado en orden de campos declarado (nunca
// orden de iteración de mapas) más el límite pedido, así perfiles iguales
// con límites distintos jamás comparten entrada.
func QueryFingerprint(profile domain.ChartProfile, limit int) string {
	digest := xxhash.New()

	for _, sys := range domain.SystemOrder {
		writeField(digest, "sys", string(sys))
		for _, body := range domain.BodyOrder {
			if sign, ok := profile.Placement(sys, body); ok {
				writeField(digest, string(body), string(sign))
			}
		}
		for _, aspect := range profile.Aspects[sys] {
			writeField(digest, "aspect", aspect.PairKey())
		}
		for _, st := range profile.Stelliums[sys] {
			writeField(digest, "stellium", st.GroupKey()+"|"+strconv.Itoa(st.BodyCount))
		}
		writeField(digest, "element", profile.DominantElement[sys])
	}
	writeField(digest, "lifepath", profile.LifePath.String())
	writeField(digest, "day", profile.DayNumber.String())
	writeField(digest, "zodiac", profile.ChineseZodiac)
	writeField(digest, "birthtime", strconv.FormatBool(profile.HasKnownBirthTime))
	writeField(digest, "limit", strconv.Itoa(limit))

	return fmt.Sprintf("%016x", digest.Sum64())
}

func writeField(digest *xxhash.Digest, name, value string) {
	// Digest.Write nunca devuelve error.
	_, _ = digest.WriteString(name + "=" + value + ";")
}
