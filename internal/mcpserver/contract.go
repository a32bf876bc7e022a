package mcpserver

// CatalogFormatContract describes the catalog record shape that LLM
// consumers should assume when reading tool output or proposing edits.
const CatalogFormatContract = `# Patina Catalog Record Contract

The catalog is a single JSON array. Each element describes one photo.

## Normalized shape

` + "```" + `json
{
  "id": "8f3c…",                 // opaque identifier, stringified
  "title": "Street scene, Delhi",
  "image": "https://…/images/street_scene.jpg",
  "thumb": "https://…/thumbs/street_scene.jpg",
  "tag": ["Delhi", "1920s", "Street"],
  "post_description": "…",        // may be empty
  "width": 1600,                  // declared pixels, 0 when unknown
  "height": 1067
}
` + "```" + `

## Rules

1. **Field fallbacks.** Source documents may use ` + "`images`" + `/` + "`thumbs`" + ` arrays
   instead of the singular fields, and ` + "`tags`" + ` instead of ` + "`tag`" + `; the
   loader normalizes to the shape above.
2. **Tags are case-sensitive** and keep their authored order.
3. **Numeric tags** (3-4 digits, optional trailing "s", e.g. ` + "`1920s`" + `)
   are decade labels: valid filter targets, excluded from chip lists.
4. **Missing optional fields degrade**, never fail: absent title renders
   empty, absent dimensions fall back to a square layout estimate.
5. **Search is recall-biased:** any single query term matching the title
   or any tag as a substring includes the record.
`
