package gacha

// reconciledGroup 是去重归并后的一组同ID卡牌
type reconciledGroup struct {
	cardID string
	count  int64
	isNew  bool
}

// reconcileDuplicates 把一批到手卡牌按ID归并，维持首次出现的顺序。
// 抽取前已持有的卡牌整组计入重复，未持有的整组计入新获得，
// 同一批内的多次命中不会让后续命中变成重复。
func reconcileDuplicates(drawn []string, ownedBefore map[string]struct{}) []reconciledGroup {
	index := make(map[string]int, len(drawn))
	groups := make([]reconciledGroup, 0, len(drawn))
	for _, cardID := range drawn {
		if i, ok := index[cardID]; ok {
			groups[i].count++
			continue
		}
		_, owned := ownedBefore[cardID]
		index[cardID] = len(groups)
		groups = append(groups, reconciledGroup{
			cardID: cardID,
			count:  1,
			isNew:  !owned,
		})
	}
	return groups
}
